// Package phclient provides the primary entry point for constructing a
// Planhat API client that implements the planhat.Client interface.
//
// It layers configuration, the retrying HTTP transport, and the read
// cache on top of the object model defined in the planhat package. Most
// applications should import phclient to build a client, then use the
// returned planhat.Client to reach the operation groups: Objects(),
// Companies(), Metrics() and Analytics().
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/robocorp/robocorp-planhat/pkg/phclient"
//	  "github.com/robocorp/robocorp-planhat/pkg/planhat"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Minimal: just an API key.
//	  cli, err := phclient.NewWithAPIKey("my-api-key")
//	  if err != nil { log.Fatal(err) }
//
//	  // With analytics enabled as well:
//	  cli, err = phclient.NewWithAPIKeyAndTenant("my-api-key", "tenant-uuid")
//	  if err != nil { log.Fatal(err) }
//
//	  // Full control through a Config:
//	  cli, err = phclient.New(&planhat.Config{
//	    APIKey:   "my-api-key",
//	    RetryMax: 5,
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  endusers, err := cli.Objects().List(ctx, planhat.KindEnduser, nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = endusers
//	}
//
// # Configuration files
//
// LoadConfig reads a YAML configuration file and the PLANHAT_*
// environment variables, so deployments can keep the API key out of
// code. SaveConfig writes one back with owner-only permissions.
package phclient
