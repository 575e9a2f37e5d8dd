// Package config loads the capgate configuration.
//
// Configuration is assembled in three layers, later layers overriding
// earlier ones:
//
//  1. Built-in defaults (GetDefaultConfig)
//  2. config.yaml in the configuration directory (default ~/.config/capgate)
//  3. CAPGATE_* environment variables, e.g. CAPGATE_CRM_API_KEY or
//     CAPGATE_SERVER_MODE=proxy
//
// The merged configuration is validated before it is returned. Validation
// failures are reported as a ConfigurationErrorCollection whose entries
// carry the offending field and suggestions for fixing it.
//
// Example config.yaml:
//
//	server:
//	  host: 0.0.0.0
//	  port: 8090
//	  transport: streamable-http
//	  mode: dynamic
//	crm:
//	  baseURL: https://services.leadconnectorhq.com
//	  locationID: ve9EPM428h8vShlRW1KT
//	  timeout: 30s
//	categories:
//	  enabled: [contacts]
//	  excluded: [conversations]
package config
