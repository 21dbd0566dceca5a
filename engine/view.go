package engine

import "github.com/Sharon-codes/UIDAI-Hackathon/schema"

// ============================================================================
// RECORD VIEW — Zero-Copy Data Access Interface
// ============================================================================
// The engine never owns the dataset. It reads through this interface.
//
// Implementations:
//   DomainView[T]  — reads typed structs via accessor functions (zero-copy)
//   SubView        — filtered subset (indices into parent, zero-copy)
//
// The district dataset is bound once through districtAdapter; every filter
// and grouping step after that is an index list into the same backing slice.
// ============================================================================

// RecordView provides indexed access to a dataset.
// The engine calls Dimension/Measure in tight loops — keep implementations fast.
type RecordView interface {
	Len() int
	Dimension(index int, key string) string
	Measure(index int, key string) float64
	DimensionKeys() []string // available dimension keys
	MeasureKeys() []string   // available measure keys
}

// ============================================================================
// SUB VIEW — filtered subset (zero-copy)
// ============================================================================

// SubView is a filtered subset of a parent RecordView.
// Holds indices into the parent — no data copy.
type SubView struct {
	parent  RecordView
	indices []int
}

func newSubView(parent RecordView, indices []int) RecordView {
	return &SubView{parent: parent, indices: indices}
}

func (v *SubView) Len() int { return len(v.indices) }

func (v *SubView) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.indices) {
		return ""
	}
	return v.parent.Dimension(v.indices[i], key)
}

func (v *SubView) Measure(i int, key string) float64 {
	if i < 0 || i >= len(v.indices) {
		return 0
	}
	return v.parent.Measure(v.indices[i], key)
}

func (v *SubView) DimensionKeys() []string { return v.parent.DimensionKeys() }
func (v *SubView) MeasureKeys() []string   { return v.parent.MeasureKeys() }

// ============================================================================
// DOMAIN ADAPTER — Zero-copy typed struct access
// ============================================================================
//
// Usage:
//
//	adapter := engine.NewDomainAdapter[schema.Record]().
//	    Dimension("state", func(r schema.Record) string { return r.State }).
//	    Measure("ami_score", func(r schema.Record) float64 { return r.AMIScore })
//
//	view := adapter.Bind(records)
//
// ============================================================================

// DomainAdapter builds a RecordView from typed structs.
// Declare once, bind many times.
type DomainAdapter[T any] struct {
	dimOrder []string
	mesOrder []string
	dims     map[string]func(T) string
	meas     map[string]func(T) float64
}

// NewDomainAdapter creates a new adapter for type T.
func NewDomainAdapter[T any]() *DomainAdapter[T] {
	return &DomainAdapter[T]{
		dims: make(map[string]func(T) string),
		meas: make(map[string]func(T) float64),
	}
}

// Dimension registers a dimension accessor.
func (a *DomainAdapter[T]) Dimension(key string, fn func(T) string) *DomainAdapter[T] {
	if _, exists := a.dims[key]; !exists {
		a.dimOrder = append(a.dimOrder, key)
	}
	a.dims[key] = fn
	return a
}

// Measure registers a measure accessor.
func (a *DomainAdapter[T]) Measure(key string, fn func(T) float64) *DomainAdapter[T] {
	if _, exists := a.meas[key]; !exists {
		a.mesOrder = append(a.mesOrder, key)
	}
	a.meas[key] = fn
	return a
}

// Bind creates a RecordView from a data slice. Zero-copy — holds reference.
func (a *DomainAdapter[T]) Bind(data []T) RecordView {
	return &DomainView[T]{
		data:     data,
		dims:     a.dims,
		meas:     a.meas,
		dimKeys:  a.dimOrder,
		measKeys: a.mesOrder,
	}
}

// DomainView reads typed struct fields via registered accessor functions.
type DomainView[T any] struct {
	data     []T
	dims     map[string]func(T) string
	meas     map[string]func(T) float64
	dimKeys  []string
	measKeys []string
}

func (v *DomainView[T]) Len() int { return len(v.data) }

func (v *DomainView[T]) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.data) {
		return ""
	}
	if fn, ok := v.dims[key]; ok {
		return fn(v.data[i])
	}
	return ""
}

func (v *DomainView[T]) Measure(i int, key string) float64 {
	if i < 0 || i >= len(v.data) {
		return 0
	}
	if fn, ok := v.meas[key]; ok {
		return fn(v.data[i])
	}
	return 0
}

func (v *DomainView[T]) DimensionKeys() []string { return v.dimKeys }
func (v *DomainView[T]) MeasureKeys() []string   { return v.measKeys }

// ============================================================================
// DISTRICT VIEW
// ============================================================================

var districtAdapter = NewDomainAdapter[schema.Record]().
	Dimension(schema.KeyState, func(r schema.Record) string { return r.State }).
	Dimension(schema.KeyDistrict, func(r schema.Record) string { return r.District }).
	Measure(schema.KeyAMI, func(r schema.Record) float64 { return r.AMIScore }).
	Measure(schema.KeyERP, func(r schema.Record) float64 { return r.ERPScore }).
	Measure(schema.KeyICMP, func(r schema.Record) float64 { return r.ICMPScore }).
	Measure(schema.KeyLastMile, func(r schema.Record) float64 { return r.LastMileDensity }).
	Measure(schema.KeyGhost, schema.Record.GhostValue)

// NewRecordView binds the district dataset as a RecordView.
func NewRecordView(records []schema.Record) RecordView {
	return districtAdapter.Bind(records)
}

// RecordAt reassembles the district record at index i of any district view.
func RecordAt(view RecordView, i int) schema.Record {
	return schema.Record{
		State:           view.Dimension(i, schema.KeyState),
		District:        view.Dimension(i, schema.KeyDistrict),
		AMIScore:        view.Measure(i, schema.KeyAMI),
		ERPScore:        view.Measure(i, schema.KeyERP),
		ICMPScore:       view.Measure(i, schema.KeyICMP),
		LastMileDensity: view.Measure(i, schema.KeyLastMile),
		GhostFlag:       view.Measure(i, schema.KeyGhost) > 0,
	}
}
