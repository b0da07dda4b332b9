// Package config loads storefront.json.
//
// A missing file is not an error for the CLI: LoadOrNew falls back to the
// defaults returned by New. Values are validated after loading, and flags
// given on the command line override them.
//
//	{
//	  "title": "Storefront",
//	  "server": {"host": "localhost", "port": 3000},
//	  "metrics": {"enabled": true, "namespace": "storefront"},
//	  "export": {"bucket": "previews", "region": "eu-west-1"}
//	}
package config
