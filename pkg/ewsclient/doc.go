// Package ewsclient provides the entry point for constructing an Exchange Web
// Services FindFolder client that implements the ews.Client interface.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/ews-client/pkg/ews"
//	  "github.com/fivetwenty-io/ews-client/pkg/ewsclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := ewsclient.New(ctx, &ews.Config{Endpoint: "https://mail.example.com/EWS/Exchange.asmx"})
//	  if err != nil { log.Fatal(err) }
//
//	  result, err := cli.FindFolders(ctx, ews.DefaultParentFolderID, "AllProperties")
//	  if err != nil { log.Fatal(err) }
//
//	  if result.IsFault() {
//	    log.Printf("fault %s: %s", result.Fault.Code, result.Fault.String)
//	    return
//	  }
//
//	  for _, folder := range result.Folders {
//	    log.Printf("%s %s %s", folder.FolderID, folder.DisplayName, folder.TotalCount)
//	  }
//	}
//
// # Offline mode
//
// NewOffline builds a client that answers every call with the embedded
// simulated response, for deterministic tests without a server. Set
// Config.FixturePath to serve another document.
package ewsclient
