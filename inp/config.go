// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package inp implements the simulation configuration: command-line flags,
// the JSON material model and the HDF5 source catalog.
package inp

import (
	"flag"
	"io/ioutil"
	"math"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"

	"github.com/seismech/gosem/seis"
)

// Config holds every command-line option of a run
type Config struct {

	// problem
	MeshFile  string // mesh input path
	ModelFile string // material model path, usually the same file
	Order     int    // polynomial order
	Ndim      int    // ambient dimension, 2 or 3
	Physics   string // "acoustic", "elastic2d" or "elastic3d"

	// schedule
	Duration float64 // total simulated time
	Dt       float64 // time step, adjusted so Duration/Dt is integer
	Nsteps   int     // number of time steps

	// boundary conditions
	Dirichlet []string // sideset names pinned to zero

	// snapshots
	SaveMovie      bool
	MovieFileName  string
	MovieField     string
	SaveFrameEvery int

	// sources
	SourceFileName string // HDF5 source catalog; overrides the inline flags
	NumSources     int
	SourceType     string // "ricker" or "file"
	SrcLocX        []float64
	SrcLocY        []float64
	SrcLocZ        []float64
	SrcNumComp     []int
	SrcAmplitude   []float64
	SrcCenterFreq  []float64
	SrcTimeDelay   []float64

	// receivers
	NumReceivers     int
	ReceiverFileName string // trace output path
	ReceiverNames    []string
	RecLocX          []float64
	RecLocY          []float64
	RecLocZ          []float64

	// switches
	Testing   bool    // suppress mandatory-flag errors
	Verbose   bool
	StrictCFL bool    // treat a CFL violation as fatal
	Sentinel  float64 // blow-up threshold on |u|
}

// floats parses a comma-separated list of numbers
func floats(s string) (vv []float64, err error) {
	if s == "" {
		return
	}
	for _, tok := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
		if err != nil {
			return nil, chk.Err("cannot parse number %q", tok)
		}
		vv = append(vv, v)
	}
	return
}

// ints parses a comma-separated list of integers
func ints(s string) (vv []int, err error) {
	if s == "" {
		return
	}
	for _, tok := range strings.Split(s, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil {
			return nil, chk.Err("cannot parse integer %q", tok)
		}
		vv = append(vv, v)
	}
	return
}

// names splits a comma-separated list of names
func names(s string) (nn []string) {
	if s == "" {
		return
	}
	for _, tok := range strings.Split(s, ",") {
		nn = append(nn, strings.TrimSpace(tok))
	}
	return
}

// ParseFlags reads the configuration from command-line arguments. Mandatory
// flags are enforced unless --testing is given.
func ParseFlags(args []string) (o *Config, err error) {
	o = &Config{}
	fs := flag.NewFlagSet("gosem", flag.ContinueOnError)
	fs.SetOutput(ioutil.Discard)

	fs.StringVar(&o.MeshFile, "mesh-file", "", "mesh input path")
	fs.StringVar(&o.ModelFile, "model-file", "", "material model path")
	fs.IntVar(&o.Order, "polynomial-order", 0, "spectral order")
	fs.IntVar(&o.Ndim, "dimension", 0, "ambient dimension")
	fs.StringVar(&o.Physics, "physics", "acoustic", "physics kernel name")
	fs.Float64Var(&o.Duration, "duration", -1, "total simulated time")
	fs.Float64Var(&o.Dt, "time-step", -1, "time step")
	dirichlet := fs.String("homogeneous-dirichlet", "", "comma-separated sideset names")
	fs.BoolVar(&o.SaveMovie, "save-movie", false, "save snapshots")
	fs.StringVar(&o.MovieFileName, "movie-file-name", "", "snapshot output path")
	fs.StringVar(&o.MovieField, "movie-field", "u", "snapshot field name")
	fs.IntVar(&o.SaveFrameEvery, "save-frame-every", 10, "steps between snapshots")
	fs.StringVar(&o.SourceFileName, "source-file-name", "", "HDF5 source catalog path")
	fs.IntVar(&o.NumSources, "number-of-sources", 0, "number of inline sources")
	fs.StringVar(&o.SourceType, "source-type", "ricker", "inline source type")
	slx := fs.String("source-location-x", "", "source x coordinates")
	sly := fs.String("source-location-y", "", "source y coordinates")
	slz := fs.String("source-location-z", "", "source z coordinates")
	snc := fs.String("source-num-components", "", "source component counts")
	sam := fs.String("ricker-amplitude", "", "source amplitudes")
	scf := fs.String("ricker-center-freq", "", "source center frequencies")
	std := fs.String("ricker-time-delay", "", "source time delays")
	fs.IntVar(&o.NumReceivers, "number-of-receivers", 0, "number of receivers")
	fs.StringVar(&o.ReceiverFileName, "receiver-file-name", "", "trace output path")
	rnm := fs.String("receiver-names", "", "receiver names")
	rlx := fs.String("receiver-location-x", "", "receiver x coordinates")
	rly := fs.String("receiver-location-y", "", "receiver y coordinates")
	rlz := fs.String("receiver-location-z", "", "receiver z coordinates")
	fs.BoolVar(&o.Testing, "testing", false, "suppress mandatory-flag errors")
	fs.BoolVar(&o.Verbose, "verbose", false, "raise log level")
	fs.BoolVar(&o.StrictCFL, "strict-cfl", false, "treat CFL violations as fatal")
	fs.Float64Var(&o.Sentinel, "sentinel", 5, "blow-up threshold on |u|")

	if err = fs.Parse(args); err != nil {
		return nil, chk.Err("cannot parse flags: %v", err)
	}

	o.Dirichlet = names(*dirichlet)
	o.ReceiverNames = names(*rnm)
	if o.SrcLocX, err = floats(*slx); err != nil {
		return nil, err
	}
	if o.SrcLocY, err = floats(*sly); err != nil {
		return nil, err
	}
	if o.SrcLocZ, err = floats(*slz); err != nil {
		return nil, err
	}
	if o.SrcNumComp, err = ints(*snc); err != nil {
		return nil, err
	}
	if o.SrcAmplitude, err = floats(*sam); err != nil {
		return nil, err
	}
	if o.SrcCenterFreq, err = floats(*scf); err != nil {
		return nil, err
	}
	if o.SrcTimeDelay, err = floats(*std); err != nil {
		return nil, err
	}
	if o.RecLocX, err = floats(*rlx); err != nil {
		return nil, err
	}
	if o.RecLocY, err = floats(*rly); err != nil {
		return nil, err
	}
	if o.RecLocZ, err = floats(*rlz); err != nil {
		return nil, err
	}

	if err = o.validate(); err != nil {
		return nil, err
	}
	return
}

// validate enforces the mandatory flags and adjusts the time step so the
// number of steps is an integer
func (o *Config) validate() (err error) {
	if !o.Testing {
		switch {
		case o.MeshFile == "":
			return chk.Err("flag --mesh-file is required")
		case o.ModelFile == "":
			return chk.Err("flag --model-file is required")
		case o.Order < 1:
			return chk.Err("flag --polynomial-order is required")
		case o.Ndim != 2 && o.Ndim != 3:
			return chk.Err("flag --dimension must be 2 or 3")
		case o.Duration <= 0:
			return chk.Err("flag --duration is required")
		case o.Dt <= 0:
			return chk.Err("flag --time-step is required")
		}
	}
	if o.SourceType != "ricker" && o.SourceType != "file" {
		return chk.Err("source type %q not recognized; possibilities are: ricker, file", o.SourceType)
	}
	if o.Duration > 0 && o.Dt > 0 {
		o.Nsteps = int(math.Ceil(o.Duration / o.Dt))
		o.Dt = o.Duration / float64(o.Nsteps)
	}
	if o.NumSources > 0 {
		n := o.NumSources
		if len(o.SrcLocX) != n || len(o.SrcLocY) != n || (o.Ndim == 3 && len(o.SrcLocZ) != n) {
			return chk.Err("need %d source locations per coordinate", n)
		}
		if len(o.SrcNumComp) != n {
			return chk.Err("need %d entries in --source-num-components", n)
		}
		if o.SourceType == "ricker" {
			if len(o.SrcAmplitude) != n || len(o.SrcCenterFreq) != n || len(o.SrcTimeDelay) != n {
				return chk.Err("need %d entries in each --ricker-* flag", n)
			}
		}
	}
	if o.NumReceivers > 0 {
		n := o.NumReceivers
		if len(o.ReceiverNames) != n {
			return chk.Err("need %d entries in --receiver-names", n)
		}
		if len(o.RecLocX) != n || len(o.RecLocY) != n || (o.Ndim == 3 && len(o.RecLocZ) != n) {
			return chk.Err("need %d receiver locations per coordinate", n)
		}
	}
	return
}

// Sources builds the source list: from the HDF5 catalog when one is given,
// otherwise from the inline flags
func (o *Config) Sources() (srcs []*seis.Source, err error) {
	if o.SourceFileName != "" {
		return ReadSourceCatalog(o.SourceFileName, o.Ndim)
	}
	if o.NumSources > 0 && o.SourceType != "ricker" {
		return nil, chk.Err("inline sources must be rickers; tabulated sources need a catalog")
	}
	for i := 0; i < o.NumSources; i++ {
		x := []float64{o.SrcLocX[i], o.SrcLocY[i]}
		if o.Ndim == 3 {
			x = append(x, o.SrcLocZ[i])
		}
		if o.SrcNumComp[i] > 1 {
			return nil, chk.Err("inline source %d has %d components; vector sources need a catalog with a direction", i, o.SrcNumComp[i])
		}
		stf, err := seis.NewRicker(o.SrcAmplitude[i], o.SrcCenterFreq[i], o.SrcTimeDelay[i])
		if err != nil {
			return nil, err
		}
		s, err := seis.NewSource(sourceName(i), x, o.SrcNumComp[i], nil, stf)
		if err != nil {
			return nil, err
		}
		srcs = append(srcs, s)
	}
	return
}

// Receivers builds the receiver list from the inline flags
func (o *Config) Receivers() (recs []*seis.Receiver) {
	for i := 0; i < o.NumReceivers; i++ {
		x := []float64{o.RecLocX[i], o.RecLocY[i]}
		if o.Ndim == 3 {
			x = append(x, o.RecLocZ[i])
		}
		recs = append(recs, seis.NewReceiver(o.ReceiverNames[i], x))
	}
	return
}

func sourceName(i int) string {
	return "source-" + strconv.Itoa(i)
}
