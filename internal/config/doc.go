// Package config provides configuration management for the opexpr command.
//
// Configuration is loaded from environment variables and validated on startup.
// Command-line flags override it. Extra constants can be loaded from a YAML
// file of the form:
//
//	constants:
//	  - name: tau
//	    value: 2*pi
//	    description: Full turn
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg)
package config
