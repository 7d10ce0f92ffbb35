// Package config loads and validates statiq server configuration.
//
// Configuration is merged from, in order of increasing precedence: built-in
// defaults, YAML config files, STATIQ_* environment variables, and CLI flags.
//
//	cfg, err := config.Load([]string{"config.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	rules := cfg.Static.Rules(nil)
//
// The static section mirrors the resolution rules of the statiq package:
//
//	static:
//	  include_path: ["./public", "./themes/default"]
//	  dirs: ["assets", "/^images\/\d+/"]
//	  ignore_extensions: [tmpl, tt, tt2, html, xhtml]
//	  ignore_dirs: [api]
//	  mime_types:
//	    jpg: image/jpg
//	  expires: 3600
//	  debug: false
//
// Entries in dirs delimited by "/" on both ends are regular expression
// patterns; everything else is a literal directory name.
package config
