// SPDX-License-Identifier: MIT

// Package hostio converts between covwt's external formats and package wcov.
//
// Inputs are a CSV data matrix (one observation per line) or a YAML request
// carrying data, weights, center and flags. The output is a JSON record
// {cov, center, n_obs, wt?, cor?} in which NaN and ±Inf are written as the
// strings "NaN", "+Inf" and "-Inf" so degenerate estimates stay visible.
package hostio
