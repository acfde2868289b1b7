// Package database handles the optional connection to an asset database.
//
// When the serial list lives in a CMDB or asset table rather than a file, the
// reconciler reads it from there (input source "db"). This package wraps GORM with
// the MySQL driver for that connection and offers a small schema inspector used to
// check that the configured table and column exist before querying.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	ok, err := database.HasColumn(db, "assets", "service_tag")
package database
