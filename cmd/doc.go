// Package cmd implements the graphmail command line interface.
//
// Subcommands:
//   - serve: run the MCP server over stdio or streamable HTTP
//   - auth: run the interactive Microsoft sign-in flow and write the token file
//   - version: print the build version
package cmd
