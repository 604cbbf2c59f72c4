// Package quickbase provides types, builders, and the result model for working
// with the Quickbase JSON RESTful API.
//
// # Overview
//
// The package defines the request and response types of the records
// endpoints, fluent builders that assemble them, and a strict Result type
// that every client operation returns. A concrete client is provided by the
// qbclient package, which wires configuration and HTTP transport.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/quickbase-client/pkg/qbclient"
//	  "github.com/fivetwenty-io/quickbase-client/pkg/quickbase"
//	)
//
//	func example() {
//	  cli, err := qbclient.New(&quickbase.Config{Realm: "acme", UserToken: "b7..."})
//	  if err != nil { log.Fatal(err) }
//
//	  query := quickbase.NewQueryBuilder().
//	    From("bck7gp3q2").
//	    Select(3, 6, 7).
//	    Where("{6.EX.'hello'}").
//	    SortBy(6, quickbase.SortAsc).
//	    Build()
//
//	  result, err := cli.QueryRecords(context.Background(), query)
//	  if err != nil { log.Fatal(err) } // transport fault
//	  if result.IsFailure() {
//	    log.Printf("query failed: %s", result.Error())
//	    return
//	  }
//	  _ = result.MustValue().Data
//	}
//
// # Results
//
// Result[T] holds either a value or an Error. The invariant IsSuccess() ⇔
// Error() == None is checked whenever a Result is built; reading the value of
// a failed Result returns ErrInvalidState instead of a zero value.
//
// Errors carry a Kind: ClientError for 4xx responses, ServerError for 5xx
// responses, NotFound for a query that matched no records, and Failure for
// everything else.
//
// # Mutations
//
// CommandBuilder assembles inserts, updates and deletes:
//
//	insert := quickbase.NewCommandBuilder().
//	  ForTable("bck7gp3q2").
//	  ReturnFields(3, 6).
//	  AddNewRecord(func(r *quickbase.RecordBuilder) {
//	    r.AddField(6, quickbase.String("Andre Harris")).
//	      AddField(7, quickbase.Int(10))
//	  }).
//	  BuildInsertUpdateCommand()
//
// UpdateRecord does the same but also sets the key field (RecordIDFieldID).
package quickbase
