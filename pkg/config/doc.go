// Package config loads the optional xamlscale configuration file.
//
// The file is YAML. It can change the extension of the files processed in
// folder mode and register additional position and region patterns on top of
// the built-in catalog:
//
//	extension: .xaml
//	positions:
//	  - activity: DoubleClick
//	    property: CursorPosition
//	    target: CursorPosition
//	regions:
//	  - activity: HoverTrigger
//	    property: ClippingRegion
//	    target: Region
package config
