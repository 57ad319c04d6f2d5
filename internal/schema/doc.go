// Package schema loads JSON Schema documents from a folder on disk and
// validates decoded request data against them.
//
// Schemas are addressed by name relative to the folder, without the .json
// extension, e.g. "RequestBody/CreateUser" maps to
// <folder>/RequestBody/CreateUser.json. Documents are read fresh on every
// Resolve call; nothing is cached.
//
// Validation is delegated to github.com/santhosh-tekuri/jsonschema/v5 using draft 7.
// Validator.Validate returns an immutable Result, so one Validator may be
// shared by concurrent requests.
package schema
