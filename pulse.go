// Package pulse is the Aadhaar Pulse district analytics dashboard.
//
// Usage:
//
//	import "github.com/Sharon-codes/UIDAI-Hackathon/engine"
//
//	dash := engine.Build(engine.NewRecordView(records),
//	    engine.ViewState{StateFilter: "Bihar"},
//	    engine.WithTopN(10),
//	)
//
// The engine rolls district records up to states (or selects one state's
// districts) and returns render-ready output: overview cards, top/bottom
// rankings, chart configs and the detail table. The intel package turns a
// single district into a deterministic intelligence brief; report renders
// text briefs, xlsx workbooks and PNG charts; dataset loads and harmonises
// the source data; server and cmd/pulse put it in front of users.
//
// Nothing here calls an external service. All computation is local.
package pulse

// Version is the release reported by the CLI and the health endpoint.
const Version = "1.0.0"
