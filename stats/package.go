// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// stats implements kernel density estimation via diffusion, along
// with the numerical routines it builds on.
package stats // import "github.com/aclements/go-kdediffusion/stats"

import "math"

var inf = math.Inf(1)
var nan = math.NaN()
