// Package version holds the suite version reported by every service.
package version

const Version = "1.0.0"
