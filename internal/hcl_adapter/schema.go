package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot is the schema of a configuration file.
type fileRoot struct {
	Prefix        *string         `hcl:"prefix,optional"`
	DefaultOption *string         `hcl:"default_option,optional"`
	ResourceFiles []string        `hcl:"resource_files,optional"`
	Resources     *resourcesBlock `hcl:"resources,block"`
	Aspects       []*aspectBlock  `hcl:"aspect,block"`
}

// aspectBlock is the schema of an `aspect "name" { ... }` block.
type aspectBlock struct {
	Name          string          `hcl:"name,label"`
	DefaultOption string          `hcl:"default_option,optional"`
	BasePath      string          `hcl:"base_path,optional"`
	Resources     *resourcesBlock `hcl:"resources,block"`
}

// resourcesBlock holds free-form attributes, evaluated into a resource tree.
type resourcesBlock struct {
	Body hcl.Body `hcl:",remain"`
}
