// Copyright 2016 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package facade

import (
	"fmt"
	"html"
	"sort"
	"strings"
)

// HadoopConfig is the source of the loaded Hadoop/metastore configuration
// this process is running with; the embedder supplies it (reading the
// site's core-site.xml/hdfs-site.xml is an external concern).
type HadoopConfig struct {
	Sources []string
	Values  map[string]string
}

// GetHadoopConfig implements get_hadoop_config: renders the configuration
// as either plain text or an HTML fragment, in a fixed layout.
func (f *Facade) GetHadoopConfig(cfg HadoopConfig, asText bool) string {
	keys := make([]string, 0, len(cfg.Values))
	for k := range cfg.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	if asText {
		b.WriteString("Hadoop Configuration\n")
		b.WriteString(strings.Join(cfg.Sources, ", "))
		b.WriteString("\n\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "%s=%s\n", k, cfg.Values[k])
		}
		return b.String()
	}

	b.WriteString("<h2>Hadoop Configuration</h2>")
	b.WriteString(html.EscapeString(strings.Join(cfg.Sources, ", ")))
	b.WriteString("<table class='table table-bordered table-hover'>")
	b.WriteString("<tr><th>Key</th><th>Value</th></tr>")
	for _, k := range keys {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td></tr>", html.EscapeString(k), html.EscapeString(cfg.Values[k]))
	}
	b.WriteString("</table>")
	return b.String()
}

// GetHadoopConfigValue implements get_hadoop_config_value: returns the
// empty string for an unknown key rather than an error, matching the
// source's JNI-friendly contract.
func (f *Facade) GetHadoopConfigValue(cfg HadoopConfig, name string) string {
	return cfg.Values[name]
}
