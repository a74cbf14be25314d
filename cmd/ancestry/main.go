// Command ancestry finds ancestor routes over a relational schema and
// composes the SQL that walks them.
//
//	ancestry route Bolt Car --schema schema.yaml
//	ancestry sql Bolt Car --schema schema.yaml --where id=1
//	ancestry query Bolt Car --dialect postgres --dsn "$DSN" --where id=1
//	ancestry routes --dialect sqlite --dsn file:app.db
package main

import (
	"fmt"
	"os"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
