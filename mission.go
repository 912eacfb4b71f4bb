// SPDX-License-Identifier: MIT

// Package mission parses Torque-style mission descriptions into a tree of elements.
//
// A mission file nests object blocks:
//
//	new SimGroup(MissionGroup) {
//	   new Item(Gem1 : GemTemplate) {
//	      position = "0 4 1.5";
//	      dataBlock = "GemItem";
//	      list[0] = "a";
//	   };
//	};
//
// [Parse] materialises the blocks as [Element]s carrying loosely typed fields; typed getters &
// [Element.Object] coerce them on demand.
package mission

import (
	"github.com/sirupsen/logrus"
)

type (
	// Config defines configuration options for the [Element] operations.
	Config struct {
		// Logger for [Element] messages.
		//
		// Preferring a public field to allow for sharing.
		Logger logrus.FieldLogger
		Debug  bool
	}

	// Option defines the Element functional option type.
	Option func(*Element)
)

var defConfig = DefConfig()

// DefConfig obtains the package's [Element] default options.
func DefConfig() *Config {
	return &Config{
		Logger: logrus.New(),
		Debug:  false,
	}
}
