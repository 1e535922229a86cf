package core

import "context"

type contextKey string

const (
	ctxKeyTheme  contextKey = "theme"
	ctxKeyViewID contextKey = "view_id"
)

// Theme is the UI colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme returns the theme named s, or ok=false.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(Normalize(s)) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	}
	return "", false
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// WithTheme stores the request's theme in ctx.
func WithTheme(ctx context.Context, t Theme) context.Context {
	return context.WithValue(ctx, ctxKeyTheme, t)
}

// ThemeFromContext returns the theme in ctx, defaulting to light.
func ThemeFromContext(ctx context.Context) Theme {
	if t, ok := ctx.Value(ctxKeyTheme).(Theme); ok {
		return t
	}
	return ThemeLight
}

// WithViewID stores the browser view id in ctx.
func WithViewID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyViewID, id)
}

// ViewIDFromContext extracts the view id from ctx.
func ViewIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyViewID).(string); ok {
		return v
	}
	return ""
}
