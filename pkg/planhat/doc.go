// Package planhat provides types, interfaces, and helpers for working
// with the Planhat API.
//
// # Overview
//
// Planhat models every resource as a JSON object, so the package centers
// on two types: Object, a kind-tagged wrapper around a raw mapping, and
// ObjectList, a homogeneous collection of objects. Resource kinds
// (Company, Enduser, Asset, ...) are values of the Kind type rather than
// distinct Go types, which keeps the generic client operations usable
// with every endpoint. A concrete client implementation is provided by
// the phclient package.
//
// Getting a client
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
//	  cli, err := phclient.NewWithAPIKey("my-api-key")
//	  if err != nil { log.Fatal(err) }
//
//	  companies, err := cli.Objects().List(ctx, planhat.KindCompany, nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = companies
//	}
//
// # Identities
//
// Every object can carry up to three identifiers: the Planhat-native
// "_id", a "sourceId" from an integrated CRM, and an "externalId" from
// your own systems. Operations that address an object by ID accept an
// IDType selecting which identifier is meant; on the wire, source and
// external IDs are marked with the "srcid-" and "extid-" path prefixes.
// When an operation needs a single identity (Update, Delete, list
// membership), the first populated identifier wins, in the order above.
//
// # Errors
//
// API failures surface as *APIError values that match the package
// sentinels through errors.Is: ErrNotFound, ErrBadRequest,
// ErrAuthFailed, ErrRateLimited and ErrServerError. Rate limits and
// transient server errors are retried by the transport before an error
// is ever returned here.
package planhat
