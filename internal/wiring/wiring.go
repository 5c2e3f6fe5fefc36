// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/pysync/internal/adapters/condameta"
	_ "go.trai.ch/pysync/internal/adapters/config"
	_ "go.trai.ch/pysync/internal/adapters/envlock"
	_ "go.trai.ch/pysync/internal/adapters/fetcher"
	_ "go.trai.ch/pysync/internal/adapters/installer"
	_ "go.trai.ch/pysync/internal/adapters/interpreter"
	_ "go.trai.ch/pysync/internal/adapters/lockfile"
	_ "go.trai.ch/pysync/internal/adapters/logger"
	_ "go.trai.ch/pysync/internal/adapters/shell"
	_ "go.trai.ch/pysync/internal/adapters/sitepackages"
	_ "go.trai.ch/pysync/internal/adapters/telemetry"
	_ "go.trai.ch/pysync/internal/adapters/wheelcache"
	// Register app nodes.
	_ "go.trai.ch/pysync/internal/app"
)
