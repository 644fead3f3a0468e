// Package config provides configuration structures and utilities for the
// scraper. It defines the main configuration options for crawling a
// geography directory, output generation preferences, and the precedence
// chain of CLI flags, environment variables and the .geoscraper config file.
package config
