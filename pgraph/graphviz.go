// Vizx
// Copyright (C) 2013-2024+ James Shubin and the project contributors
// Written by James Shubin <james@shubin.ca> and the project contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package pgraph

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"

	"github.com/purpleidea/vizx/util/errwrap"
)

// Graphviz outputs the graph in graphviz format. Vertices are named by their
// position, so the output is stable for the same graph.
// https://en.wikipedia.org/wiki/DOT_%28graph_description_language%29
func (g *Graph) Graphviz() string {
	//digraph g {
	//	label="hello world";
	//	node [shape=box];
	//	v0 [label="A"];
	//	v1 [label="B"];
	//	v0 -> v1 [label="f"];
	//}
	ids := make(map[Vertex]string)
	for i, v := range g.vertices {
		ids[v] = fmt.Sprintf("v%d", i)
	}

	var out strings.Builder
	fmt.Fprintf(&out, "digraph %s {\n", strconv.Quote(g.GetName()))
	fmt.Fprintf(&out, "\tlabel=%s;\n", strconv.Quote(g.GetName()))
	out.WriteString("\tnode [shape=box];\n")
	str := ""
	for _, v1 := range g.vertices {
		fmt.Fprintf(&out, "\t%s [label=%s];\n", ids[v1], strconv.Quote(v1.String()))
		for _, v2 := range g.outgoing[v1] {
			e := strconv.Quote(g.adjacency[v1][v2].String()) // edge
			// use str for clearer output ordering
			str += fmt.Sprintf("\t%s -> %s [label=%s];\n", ids[v1], ids[v2], e)
		}
	}
	out.WriteString(str)
	out.WriteString("}\n")
	return out.String()
}

// ExecGraphviz writes out the graphviz data and runs the correct graphviz
// filter command. The image is written next to the data with a .png suffix.
func (g *Graph) ExecGraphviz(program, filename string) error {
	switch program {
	case "dot", "neato", "twopi", "circo", "fdp":
	default:
		return fmt.Errorf("invalid graphviz program selected")
	}

	if filename == "" {
		return fmt.Errorf("no filename given")
	}

	// run as a normal user if possible when run with sudo
	uid, err1 := strconv.Atoi(os.Getenv("SUDO_UID"))
	gid, err2 := strconv.Atoi(os.Getenv("SUDO_GID"))

	if err := os.WriteFile(filename, []byte(g.Graphviz()), 0644); err != nil {
		return errwrap.Wrapf(err, "error writing to filename")
	}

	if err1 == nil && err2 == nil {
		if err := os.Chown(filename, uid, gid); err != nil {
			return errwrap.Wrapf(err, "error changing file owner")
		}
	}

	path, err := exec.LookPath(program)
	if err != nil {
		return errwrap.Wrapf(err, "the Graphviz program is missing")
	}

	out := fmt.Sprintf("%s.png", filename)
	cmd := exec.Command(path, "-Tpng", fmt.Sprintf("-o%s", out), filename)

	if err1 == nil && err2 == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
		cmd.SysProcAttr.Credential = &syscall.Credential{
			Uid: uint32(uid),
			Gid: uint32(gid),
		}
	}
	if _, err := cmd.Output(); err != nil {
		return errwrap.Wrapf(err, "error writing to image")
	}
	return nil
}
