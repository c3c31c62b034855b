package reporting

import (
	"fmt"
	"sort"
)

// Level é o nível de agregação do relatório na Graph API
type Level string

const (
	LevelCampaign Level = "campaign"
	LevelAd       Level = "ad"
)

// StreamConfig descreve como buscar e mapear uma stream de relatório:
// o nível da consulta, os campos pedidos à API, parâmetros extras de
// breakdown, os tipos de ação reconhecidos para extração de contagem e se a
// extração de valores de ação (action_values) se aplica
type StreamConfig struct {
	Level               Level
	Fields              string
	ExtraParams         map[string]string
	SupportedActions    map[string]bool
	ExtractActionValues bool
}

const (
	commonFields   = "campaign_id,campaign_name,account_id,account_name"
	campaignFields = "actions,action_values,unique_actions,clicks,impressions,reach,inline_link_clicks,spend,frequency,video_p100_watched_actions"
	adFields       = "adset_id,adset_name,ad_name,ad_id,actions,unique_actions,impressions,clicks,reach,inline_link_clicks,frequency,spend,video_p100_watched_actions,quality_ranking,engagement_rate_ranking,conversion_rate_ranking"
)

// streamRegistry é construído uma vez na inicialização do processo e nunca
// mais alterado
var streamRegistry = buildRegistry()

func buildRegistry() map[string]StreamConfig {
	defaultActions := actionSet(
		"landing_page_view", "post_reaction", "video_view", "link_click",
		"page_engagement", "post_engagement", "post", "comment", "like",
		"action_reaction",
	)
	offlineActions := actionSet("offline_conversion.purchase")

	campaign := func(breakdowns string) StreamConfig {
		return StreamConfig{
			Level:            LevelCampaign,
			Fields:           commonFields + "," + campaignFields,
			ExtraParams:      breakdownParams(breakdowns),
			SupportedActions: defaultActions,
		}
	}
	ad := func(breakdowns string) StreamConfig {
		return StreamConfig{
			Level:            LevelAd,
			Fields:           commonFields + "," + adFields,
			ExtraParams:      breakdownParams(breakdowns),
			SupportedActions: defaultActions,
		}
	}
	offline := func(breakdowns string) StreamConfig {
		return StreamConfig{
			Level:               LevelCampaign,
			Fields:              commonFields + ",actions,action_values",
			ExtraParams:         breakdownParams(breakdowns),
			SupportedActions:    offlineActions,
			ExtractActionValues: true,
		}
	}

	return map[string]StreamConfig{
		"campaign_performance_report":                                campaign(""),
		"campaign_by_placement_performance_report":                   campaign("platform_position,publisher_platform,device_platform"),
		"campaign_by_age_gender_performance_report":                  campaign("age,gender"),
		"campaign_by_impression_device_performance_report":           campaign("impression_device"),
		"ad_performance_report":                                      ad(""),
		"ad_by_placement_performance_report":                         ad("platform_position,publisher_platform,device_platform"),
		"ad_by_age_gender_performance_report":                        ad("age,gender"),
		"ad_by_impression_device_performance_report":                 ad("impression_device"),
		"offline_conversion_performance_report":                      offline(""),
		"offline_conversion_by_age_gender_performance_report":        offline("age,gender"),
		"offline_conversion_by_impression_device_performance_report": offline("impression_device"),
	}
}

func actionSet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}

func breakdownParams(breakdowns string) map[string]string {
	if breakdowns == "" {
		return map[string]string{}
	}
	return map[string]string{"breakdowns": breakdowns}
}

// LookupStream retorna a configuração de uma stream pelo nome. Um nome
// desconhecido é um erro de configuração e deve abortar a execução antes de
// qualquer chamada de rede.
func LookupStream(name string) (StreamConfig, error) {
	cfg, ok := streamRegistry[name]
	if !ok {
		return StreamConfig{}, fmt.Errorf("stream desconhecida: %q (streams válidas: %v)", name, StreamNames())
	}
	return cfg, nil
}

// StreamNames retorna os nomes de streams conhecidos, ordenados
func StreamNames() []string {
	names := make([]string, 0, len(streamRegistry))
	for name := range streamRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
