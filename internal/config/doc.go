// Package config handles configuration loading for scribe.
//
// # Overview
//
// Configuration is loaded from a YAML file (or TOML, when the path ends in
// .toml) with environment variable expansion. Unset fields receive defaults
// and the result is validated with struct tags.
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from SCRIBE_CONFIG environment variable
//  2. $XDG_CONFIG_HOME/scribe/config.yaml
//  3. ~/.config/scribe/config.yaml
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	session:
//	  secret: "${SCRIBE_SESSION_SECRET}"
//
// Syntax: ${VAR_NAME}
//
// # Configuration Sections
//
//	server:
//	  http_addr: "localhost:4567"
//	  read_header_timeout: "10s"
//
//	storage:
//	  data_dir: "./data"        # one file per document
//	  users_file: "./users.yml" # username: bcrypt-hash
//
//	session:
//	  secret: "..."             # at least 16 bytes, signs the session cookie
//	  ttl: "24h"                # idle timeout
//	  max_sessions: 10000
//	  cookie_name: "scribe_session"
//
//	auth:
//	  admin_username: "admin"
//
//	logging:
//	  level: "info"             # debug, info, warn, error
//	  format: "text"            # text or json
package config
