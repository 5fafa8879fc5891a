package commands_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ardanlabs/chainsync/app/tooling/admin/commands"
	"github.com/ardanlabs/chainsync/business/web/errs"
	"github.com/ardanlabs/chainsync/foundation/blockchain/database"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// newNode fakes the public api of a node holding a two block chain.
func newNode(t *testing.T) *httptest.Server {
	genesis := database.Genesis()
	chain := []database.Block{genesis, database.NewBlock(genesis, 1465154706, "first")}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/blocks/list", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chain)
	})
	mux.HandleFunc("/v1/blocks/mine", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Data string `json:"data"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(database.NewBlock(chain[1], 1465154707, req.Data))
	})
	mux.HandleFunc("/v1/peers/list", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]string{"127.0.0.1:6002"})
	})
	mux.HandleFunc("/v1/peers/add", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(errs.Response{
			Error:  "data validation error",
			Fields: map[string]string{"peer": "peer must be a valid URL"},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func Test_Commands(t *testing.T) {
	type table struct {
		name string
		args []string
		exp  []string
		err  bool
	}

	tt := []table{
		{name: "blocks", args: []string{"blocks"}, exp: []string{"816534932c2b7154836da6afc367695e6337db8a921823784c14378abed4f7d7", "AFM Chain genesis block", "first"}},
		{name: "mine", args: []string{"mine", "hello"}, exp: []string{"hello", "1465154707.000"}},
		{name: "peers", args: []string{"peers"}, exp: []string{"127.0.0.1:6002"}},
		{name: "addpeer", args: []string{"addpeer", "bad"}, exp: []string{"peer must be a valid URL"}, err: true},
		{name: "mine-no-data", args: []string{"mine"}, err: true},
	}

	t.Log("Given the need to drive a node from the admin tool.")
	{
		srv := newNode(t)

		for testID, tst := range tt {
			f := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen running %q.", testID, tst.name)
				{
					var out bytes.Buffer
					args := append(tst.args, "--url", srv.URL)
					err := commands.Run(args, &out)

					if tst.err {
						if err == nil {
							t.Fatalf("\t%s\tTest %d:\tShould get an error.", failed, testID)
						}
						for _, exp := range tst.exp {
							if !strings.Contains(err.Error(), exp) {
								t.Logf("\t\tTest %d:\tgot: %s", testID, err)
								t.Logf("\t\tTest %d:\texp: %s", testID, exp)
								t.Fatalf("\t%s\tTest %d:\tShould get back the node's message.", failed, testID)
							}
						}
						t.Logf("\t%s\tTest %d:\tShould get an error.", success, testID)
						return
					}

					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to run the command : %s", failed, testID, err)
					}

					for _, exp := range tst.exp {
						if !strings.Contains(out.String(), exp) {
							t.Logf("\t\tTest %d:\tgot: %s", testID, out.String())
							t.Logf("\t\tTest %d:\texp: %s", testID, exp)
							t.Fatalf("\t%s\tTest %d:\tShould print the result.", failed, testID)
						}
					}
					t.Logf("\t%s\tTest %d:\tShould print the result.", success, testID)
				}
			}

			t.Run(tst.name, f)
		}
	}
}
