package cmd

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/videoedit-cli/internal/config"
	"github.com/mlihgenel/videoedit-cli/internal/media"
)

const (
	envOutput       = "VIDEOEDIT_OUTPUT"
	envWorkers      = "VIDEOEDIT_WORKERS"
	envQuality      = "VIDEOEDIT_QUALITY"
	envConflict     = "VIDEOEDIT_ON_CONFLICT"
	envRetry        = "VIDEOEDIT_RETRY"
	envRetryDelay   = "VIDEOEDIT_RETRY_DELAY"
	envReport       = "VIDEOEDIT_REPORT"
	envHistoryDepth = "VIDEOEDIT_HISTORY_DEPTH"
	envCodec        = "VIDEOEDIT_CODEC"
)

// Öncelik: flag > ortam değişkeni > .videoedit.toml > ~/.videoedit/config.json > varsayılan.
func applyRootDefaults(cmd *cobra.Command) error {
	if !cmd.Flags().Changed("output") {
		if v := strings.TrimSpace(os.Getenv(envOutput)); v != "" {
			outputDir = v
		} else if activeProjectConfig != nil && strings.TrimSpace(activeProjectConfig.DefaultOutput) != "" {
			outputDir = strings.TrimSpace(activeProjectConfig.DefaultOutput)
		} else if v := config.GetDefaultOutputDir(); v != "" {
			outputDir = v
		}
	}

	if !cmd.Flags().Changed("workers") {
		if v, ok := readEnvInt(envWorkers); ok && v > 0 {
			workers = v
		} else if activeProjectConfig != nil && activeProjectConfig.Workers > 0 {
			workers = activeProjectConfig.Workers
		}
	}

	if !cmd.Flags().Changed("history-depth") {
		if v, ok := readEnvInt(envHistoryDepth); ok && v >= 0 {
			historyDepth = v
		} else if activeProjectConfig != nil && activeProjectConfig.HistoryDepth > 0 {
			historyDepth = activeProjectConfig.HistoryDepth
		} else if v := config.GetHistoryDepth(); v > 0 {
			historyDepth = v
		}
	}

	return nil
}

func applyQualityDefault(cmd *cobra.Command, flagName string, value *int) {
	if cmd.Flags().Changed(flagName) {
		return
	}
	if v, ok := readEnvInt(envQuality); ok && v >= 0 {
		*value = v
		return
	}
	if activeProjectConfig != nil && activeProjectConfig.Quality > 0 {
		*value = activeProjectConfig.Quality
	}
}

func applyOnConflictDefault(cmd *cobra.Command, flagName string, value *string) {
	if cmd.Flags().Changed(flagName) {
		return
	}
	if v := strings.TrimSpace(os.Getenv(envConflict)); v != "" {
		*value = strings.ToLower(v)
		return
	}
	if activeProjectConfig != nil && activeProjectConfig.OnConflict != "" {
		*value = activeProjectConfig.OnConflict
	}
}

func applyCodecDefault(cmd *cobra.Command, flagName string, value *string) {
	if cmd.Flags().Changed(flagName) {
		return
	}
	if v := strings.TrimSpace(os.Getenv(envCodec)); v != "" {
		*value = strings.ToLower(v)
		return
	}
	if activeProjectConfig != nil && activeProjectConfig.Codec != "" {
		*value = activeProjectConfig.Codec
	}
}

func applyMetadataDefault(cmd *cobra.Command, preserveFlag string, preserveValue *bool, stripFlag string, stripValue *bool) {
	if cmd.Flags().Changed(preserveFlag) || cmd.Flags().Changed(stripFlag) {
		return
	}
	if activeProjectConfig == nil {
		return
	}
	switch media.NormalizeMetadataMode(activeProjectConfig.MetadataMode) {
	case media.MetadataPreserve:
		*preserveValue, *stripValue = true, false
	case media.MetadataStrip:
		*preserveValue, *stripValue = false, true
	}
}

func applyRetryDefaults(cmd *cobra.Command, retryFlag string, retryValue *int, delayFlag string, delayValue *time.Duration) {
	if !cmd.Flags().Changed(retryFlag) {
		if v, ok := readEnvInt(envRetry); ok && v >= 0 {
			*retryValue = v
		} else if activeProjectConfig != nil && activeProjectConfig.Retry > 0 {
			*retryValue = activeProjectConfig.Retry
		}
	}

	if !cmd.Flags().Changed(delayFlag) {
		if v, ok := readEnvDuration(envRetryDelay); ok {
			*delayValue = v
		} else if activeProjectConfig != nil && activeProjectConfig.RetryDelay > 0 {
			*delayValue = activeProjectConfig.RetryDelay
		}
	}
}

func applyReportDefault(cmd *cobra.Command, flagName string, value *string) {
	if cmd.Flags().Changed(flagName) {
		return
	}
	if v := strings.TrimSpace(os.Getenv(envReport)); v != "" {
		*value = strings.ToLower(v)
		return
	}
	if activeProjectConfig != nil && activeProjectConfig.ReportFormat != "" {
		*value = activeProjectConfig.ReportFormat
	}
}

// timelineStepDefault editördeki varsayılan adım süresidir.
func timelineStepDefault() time.Duration {
	if activeProjectConfig != nil && activeProjectConfig.TimelineStep > 0 {
		return activeProjectConfig.TimelineStep
	}
	return time.Second
}

func readEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func readEnvDuration(name string) (time.Duration, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
