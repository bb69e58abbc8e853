// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package provider

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeResolved = "resolved"
	labelNone       = "none"
)

var (
	// Resolution outcomes by selected variant, or by failure code.
	resolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "odata_serializer_resolutions_total",
			Help: "Total number of payload serializer resolutions",
		},
		[]string{"variant", "outcome"},
	)

	// Encoder constructions; each variant should count at most once per registry.
	encoderConstructions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "odata_serializer_encoder_constructions_total",
			Help: "Total number of encoder instances constructed by registries",
		},
		[]string{"variant"},
	)

	encoderConstructionFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "odata_serializer_encoder_construction_failures_total",
			Help: "Total number of failed encoder constructions",
		},
		[]string{"variant"},
	)
)
