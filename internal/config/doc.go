// Package config loads the settings of the reconcile command.
//
// The configuration is stored in reconcile.json, or reconcile.yaml, in the
// working directory. Every field is optional.
//
// # Configuration File Structure
//
//	{
//	  "server": {
//	    "addr": ":8080",
//	    "readTimeout": "60s",
//	    "writeTimeout": "10s"
//	  },
//	  "log": {"level": "info", "format": "text"},
//	  "metrics": {"enabled": true, "namespace": "reconcile"},
//	  "tracing": {"enabled": false, "tracerName": "reconcile"},
//	  "snapshot": {"dir": "snapshots", "bucket": "", "prefix": ""}
//	}
//
// RECONCILE_ADDR overrides server.addr.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	logger := cfg.Logger(os.Stderr)
package config
