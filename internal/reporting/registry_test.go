package reporting

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupStream_AllKnownStreams(t *testing.T) {
	expected := []string{
		"ad_by_age_gender_performance_report",
		"ad_by_impression_device_performance_report",
		"ad_by_placement_performance_report",
		"ad_performance_report",
		"campaign_by_age_gender_performance_report",
		"campaign_by_impression_device_performance_report",
		"campaign_by_placement_performance_report",
		"campaign_performance_report",
		"offline_conversion_by_age_gender_performance_report",
		"offline_conversion_by_impression_device_performance_report",
		"offline_conversion_performance_report",
	}

	assert.Equal(t, expected, StreamNames())

	for _, name := range expected {
		_, err := LookupStream(name)
		assert.NoError(t, err, name)
	}
}

func TestLookupStream_UnknownStream(t *testing.T) {
	_, err := LookupStream("checkins_report")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checkins_report")
}

func TestStreamConfig_Levels(t *testing.T) {
	tests := []struct {
		stream string
		level  Level
	}{
		{"campaign_performance_report", LevelCampaign},
		{"campaign_by_age_gender_performance_report", LevelCampaign},
		{"ad_performance_report", LevelAd},
		{"ad_by_placement_performance_report", LevelAd},
		{"offline_conversion_performance_report", LevelCampaign},
	}

	for _, tt := range tests {
		t.Run(tt.stream, func(t *testing.T) {
			cfg, err := LookupStream(tt.stream)
			require.NoError(t, err)
			assert.Equal(t, tt.level, cfg.Level)
		})
	}
}

func TestStreamConfig_Breakdowns(t *testing.T) {
	tests := []struct {
		stream     string
		breakdowns string
	}{
		{"campaign_performance_report", ""},
		{"campaign_by_placement_performance_report", "platform_position,publisher_platform,device_platform"},
		{"campaign_by_age_gender_performance_report", "age,gender"},
		{"campaign_by_impression_device_performance_report", "impression_device"},
		{"ad_by_age_gender_performance_report", "age,gender"},
		{"offline_conversion_by_impression_device_performance_report", "impression_device"},
	}

	for _, tt := range tests {
		t.Run(tt.stream, func(t *testing.T) {
			cfg, err := LookupStream(tt.stream)
			require.NoError(t, err)

			if tt.breakdowns == "" {
				assert.Empty(t, cfg.ExtraParams)
				return
			}
			assert.Equal(t, tt.breakdowns, cfg.ExtraParams["breakdowns"])
		})
	}
}

func TestStreamConfig_OfflineConversions(t *testing.T) {
	cfg, err := LookupStream("offline_conversion_performance_report")
	require.NoError(t, err)

	assert.True(t, cfg.ExtractActionValues)
	assert.True(t, cfg.SupportedActions["offline_conversion.purchase"])
	assert.False(t, cfg.SupportedActions["link_click"])

	// Streams de campanha e anúncio não extraem action_values
	campaign, err := LookupStream("campaign_performance_report")
	require.NoError(t, err)
	assert.False(t, campaign.ExtractActionValues)

	ad, err := LookupStream("ad_performance_report")
	require.NoError(t, err)
	assert.False(t, ad.ExtractActionValues)
}

func TestStreamConfig_Fields(t *testing.T) {
	campaign, err := LookupStream("campaign_performance_report")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(campaign.Fields, "campaign_id,campaign_name,account_id,account_name"))
	assert.Contains(t, campaign.Fields, "video_p100_watched_actions")
	assert.NotContains(t, campaign.Fields, "adset_id")

	ad, err := LookupStream("ad_performance_report")
	require.NoError(t, err)
	assert.Contains(t, ad.Fields, "adset_id")
	assert.Contains(t, ad.Fields, "quality_ranking")

	offline, err := LookupStream("offline_conversion_performance_report")
	require.NoError(t, err)
	assert.Contains(t, offline.Fields, "action_values")
	assert.NotContains(t, offline.Fields, "video_p100_watched_actions")
}
