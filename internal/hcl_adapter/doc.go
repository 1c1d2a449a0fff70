/*
Package hcl_adapter provides the HCL implementation of config.Loader.

A configuration file looks like:

	prefix         = "mx"
	default_option = "value"
	resource_files = ["resources"]

	resources {
	  labels = { save = "Save" }
	}

	aspect "tooltip" {
	  default_option = "text"
	  base_path      = "labels"

	  resources {
	    delay = 200
	  }
	}

Resource files are resolved relative to the file that lists them.
*/
package hcl_adapter
