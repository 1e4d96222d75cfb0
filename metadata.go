package main

import (
	"time"

	"github.com/godbus/dbus/v5"
)

// Helpers for pulling typed values out of the MPRIS Metadata property, which
// arrives as a map of D-Bus variants keyed by xesam:*/mpris:* names.

func metaString(md map[string]dbus.Variant, key string) string {
	if v, ok := md[key]; ok {
		if s, ok := v.Value().(string); ok {
			return s
		}
	}
	return ""
}

func metaStrings(md map[string]dbus.Variant, key string) []string {
	v, ok := md[key]
	if !ok {
		return nil
	}
	switch val := v.Value().(type) {
	case []string:
		return val
	case string:
		// Some players report a single artist as a plain string.
		if val != "" {
			return []string{val}
		}
	}
	return nil
}

func metaDuration(md map[string]dbus.Variant, key string) time.Duration {
	v, ok := md[key]
	if !ok {
		return 0
	}
	// mpris:length is specified as int64 microseconds, but players disagree
	// on the integer width they actually emit.
	switch val := v.Value().(type) {
	case int64:
		return time.Duration(val) * time.Microsecond
	case uint64:
		return time.Duration(val) * time.Microsecond
	case int32:
		return time.Duration(val) * time.Microsecond
	case uint32:
		return time.Duration(val) * time.Microsecond
	case float64:
		return time.Duration(val * float64(time.Microsecond))
	}
	return 0
}

func metaTrackID(md map[string]dbus.Variant, key string) string {
	if v, ok := md[key]; ok {
		switch val := v.Value().(type) {
		case dbus.ObjectPath:
			return string(val)
		case string:
			return val
		}
	}
	return ""
}

// songFromMetadata builds a Song from the raw Metadata map. Status and
// Position are filled in by the caller.
func songFromMetadata(md map[string]dbus.Variant) Song {
	return Song{
		Title:   metaString(md, "xesam:title"),
		Artists: metaStrings(md, "xesam:artist"),
		Album:   metaString(md, "xesam:album"),
		TrackID: metaTrackID(md, "mpris:trackid"),
		ArtURL:  metaString(md, "mpris:artUrl"),
		Length:  metaDuration(md, "mpris:length"),
	}
}
