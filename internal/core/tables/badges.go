package tables

import "github.com/JonMunkholm/vendorboard/internal/core"

// Badge tones, mirroring the status colours used across the dashboard.

func statusTone(status string) core.Tone {
	switch core.Normalize(status) {
	case "active":
		return core.TonePositive
	case "expiring soon", "paused":
		return core.ToneWarning
	case "inactive", "archived", "expired":
		return core.ToneNegative
	}
	return core.ToneMuted
}

func scoreTone(score int64) core.Tone {
	switch {
	case score < 70:
		return core.ToneNegative
	case score < 90:
		return core.ToneWarning
	}
	return core.TonePositive
}

func breachesTone(count int64) core.Tone {
	if count > 0 {
		return core.ToneNegative
	}
	return core.TonePositive
}

func environmentTone(env string) core.Tone {
	switch core.Normalize(env) {
	case "production":
		return core.TonePositive
	case "sandbox":
		return core.ToneWarning
	}
	return core.ToneMuted
}

func severityTone(severity string) core.Tone {
	switch core.Normalize(severity) {
	case "high":
		return core.ToneNegative
	case "medium":
		return core.ToneWarning
	case "low":
		return core.TonePositive
	}
	return core.ToneMuted
}

func alertStatusTone(status string) core.Tone {
	if core.Normalize(status) == bucketOpen {
		return core.ToneWarning
	}
	return core.ToneMuted
}
