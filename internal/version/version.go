// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.4.0"

// Milestones:
// 0.4.0 - Cron-driven event notifications, season table in summary
// 0.3.0 - Moon view with phase and parallactic angle, altitude sparklines
// 0.2.0 - YAML config with .env overrides, custom twilight definitions
// 0.1.0 - Initial release: sun/moon positions, sun times, moon times, illumination
