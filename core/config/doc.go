// Package config loads the tag-reconciler configuration.
//
// Values come from the environment, optionally seeded from a .env file, on top of
// defaults declared with `default` struct tags on each section. Environment keys
// are the upper-cased section path joined by underscores:
//
//	REMOTE_BASE_URL=https://dm.example.com/api
//	REMOTE_CLIENT_ID=reconciler
//	INPUT_PATH=./serials.csv
//	OUTPUT_DIR=./out
//	RECONCILE_MAX_PAGES=500
//
// # Sections
//
//   - Remote: device-management API endpoint and credentials
//   - Input: where the serial list is read from (file, s3, db)
//   - Output: where the datasets are written (file, s3)
//   - Reconcile: report fields and pagination cap
//   - Storage, Database: backends for the s3 and db forms
//   - Log: level and format
//   - Server: the mock API served by the mock-server command
package config
