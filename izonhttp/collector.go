// Copyright (c) 2026 The izon Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package izonhttp

import (
	"github.com/derbenni/izon"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	_hitsDesc = prometheus.NewDesc("izon_cache_hits_total",
		"Get calls answered from the cache.", nil, nil)
	_missesDesc = prometheus.NewDesc("izon_cache_misses_total",
		"Get calls that had to resolve.", nil, nil)
	_resolutionsDesc = prometheus.NewDesc("izon_resolutions_total",
		"Successful resolutions, including nested ones.", nil, nil)
	_failuresDesc = prometheus.NewDesc("izon_resolution_failures_total",
		"Failed resolutions.", nil, nil)
	_promotionsDesc = prometheus.NewDesc("izon_autowired_total",
		"Class names autowired into definitions.", nil, nil)
)

type collector struct {
	container *izon.Container
}

// NewCollector returns a prometheus.Collector reporting the counters of c.
// It only reads atomic counters and may be scraped while c is in use.
func NewCollector(c *izon.Container) prometheus.Collector {
	return collector{container: c}
}

func (collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- _hitsDesc
	ch <- _missesDesc
	ch <- _resolutionsDesc
	ch <- _failuresDesc
	ch <- _promotionsDesc
}

func (c collector) Collect(ch chan<- prometheus.Metric) {
	s := c.container.Stats()
	for _, m := range []struct {
		desc  *prometheus.Desc
		value int64
	}{
		{_hitsDesc, s.Hits},
		{_missesDesc, s.Misses},
		{_resolutionsDesc, s.Resolutions},
		{_failuresDesc, s.Failures},
		{_promotionsDesc, s.Promotions},
	} {
		ch <- prometheus.MustNewConstMetric(m.desc, prometheus.CounterValue, float64(m.value))
	}
}
