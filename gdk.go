/*
Package gdk is a library for maintaining a catalog of GDK sprite assets on
disk.

The codec packages underneath it (sbf, sprite, image) never touch the
filesystem; this package is the caller that does, walking asset trees,
decoding what it finds and recording the results in a sqlite catalog.
*/
package gdk

import "log"

type Toolkit struct {
	catalog *Catalog
	logger  *log.Logger
}

func New(catalog *Catalog, logger *log.Logger) *Toolkit {
	return &Toolkit{
		catalog: catalog,
		logger:  logger,
	}
}
