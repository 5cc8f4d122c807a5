// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Model holds the material model: one value per mesh vertex for each
// parameter of the physics
type Model struct {
	Physics string               `json:"physics"` // "acoustic", "elastic2d" or "elastic3d"
	Params  map[string][]float64 `json:"params"`  // parameter name -> per-vertex values
}

// ReadModel reads a material model from a JSON file. When the file does not
// name its physics, fallbackPhysics (the --physics flag) is used instead.
func ReadModel(fn, fallbackPhysics string) (o *Model, err error) {
	b, err := io.ReadFile(fn)
	if err != nil {
		return nil, chk.Err("cannot read model file %q: %v", fn, err)
	}
	o = new(Model)
	if err = json.Unmarshal(b, o); err != nil {
		return nil, chk.Err("cannot parse model file %q: %v", fn, err)
	}
	if o.Physics == "" {
		o.Physics = fallbackPhysics
	}
	if o.Physics == "" {
		return nil, chk.Err("model file %q misses the physics name", fn)
	}
	if len(o.Params) == 0 {
		return nil, chk.Err("model file %q carries no parameters", fn)
	}
	return
}
