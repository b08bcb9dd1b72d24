package store

import (
	"encoding/json"
)

const (
	edgesKey  = "edges"
	nodeKey   = "node"
	cursorKey = "cursor"
)

// ConnectionKey returns the field name a connection is stored under on its
// parent record.
func ConnectionKey(key string, filters map[string]interface{}) string {
	name := "__" + key + "_connection"
	if len(filters) == 0 {
		return name
	}
	// encoding/json sorts map keys, so equal filters give equal keys.
	b, err := json.Marshal(filters)
	if err != nil {
		return name
	}
	return name + "(" + string(b) + ")"
}

// Connection returns the connection record stored on parent, or nil.
func (tx *Tx) Connection(parent DataID, key string, filters map[string]interface{}) *Record {
	rec, ok := tx.store.records[parent]
	if !ok {
		return nil
	}
	id, ok := rec.links[ConnectionKey(key, filters)]
	if !ok {
		return nil
	}
	return tx.Get(id)
}

// CreateConnection returns the connection stored on parent, creating an
// empty one if needed.
func (tx *Tx) CreateConnection(parent DataID, key string, filters map[string]interface{}, typename string) *Record {
	if conn := tx.Connection(parent, key, filters); conn != nil {
		return conn
	}
	p := tx.Get(parent)
	if p == nil {
		p = tx.Create(parent, "")
	}
	storageKey := ConnectionKey(key, filters)
	conn := tx.Create(DataID(string(parent)+":"+storageKey), typename)
	conn.SetLinkedRecordIDs(edgesKey, nil)
	p.SetLinkedRecordID(storageKey, conn.id)
	return conn
}

// EdgeNodes returns the node ids of the connection's edges, in order.
func (tx *Tx) EdgeNodes(conn *Record) []DataID {
	var nodes []DataID
	for _, eid := range conn.linkLists[edgesKey] {
		edge, ok := tx.store.records[eid]
		if !ok {
			continue
		}
		if node, ok := edge.links[nodeKey]; ok {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

// CreateEdge creates an edge record of edgeType pointing at node, under a
// fresh client id. The edge is not part of the connection until inserted.
func (tx *Tx) CreateEdge(conn, node *Record, edgeType string) *Record {
	edge := tx.Create(NewClientID("edge"), edgeType)
	edge.SetLinkedRecordID(nodeKey, node.id)
	return edge
}

// InsertEdgeAfter inserts edge after the edge with the given cursor. An
// empty or unknown cursor appends.
func (tx *Tx) InsertEdgeAfter(conn, edge *Record, cursor string) {
	edges := tx.withoutEdge(conn, edge.id)
	at := len(edges)
	if cursor != "" {
		if i := tx.cursorIndex(edges, cursor); i >= 0 {
			at = i + 1
		}
	}
	tx.setEdges(conn, insertAt(edges, at, edge.id))
}

// InsertEdgeBefore inserts edge before the edge with the given cursor. An
// empty or unknown cursor prepends.
func (tx *Tx) InsertEdgeBefore(conn, edge *Record, cursor string) {
	edges := tx.withoutEdge(conn, edge.id)
	at := 0
	if cursor != "" {
		if i := tx.cursorIndex(edges, cursor); i >= 0 {
			at = i
		}
	}
	tx.setEdges(conn, insertAt(edges, at, edge.id))
}

// DeleteNode removes every edge of conn whose node is nodeID.
func (tx *Tx) DeleteNode(conn *Record, nodeID DataID) {
	var kept []DataID
	for _, eid := range conn.linkLists[edgesKey] {
		if edge, ok := tx.store.records[eid]; ok && edge.links[nodeKey] == nodeID {
			continue
		}
		kept = append(kept, eid)
	}
	tx.setEdges(conn, kept)
}

func (tx *Tx) withoutEdge(conn *Record, edgeID DataID) []DataID {
	var edges []DataID
	for _, eid := range conn.linkLists[edgesKey] {
		if eid != edgeID {
			edges = append(edges, eid)
		}
	}
	return edges
}

func (tx *Tx) cursorIndex(edges []DataID, cursor string) int {
	for i, eid := range edges {
		if edge, ok := tx.store.records[eid]; ok && edge.String(cursorKey) == cursor {
			return i
		}
	}
	return -1
}

func (tx *Tx) setEdges(conn *Record, edges []DataID) {
	tx.touch(conn.id)
	conn.SetLinkedRecordIDs(edgesKey, edges)
}

func insertAt(ids []DataID, at int, id DataID) []DataID {
	ids = append(ids, "")
	copy(ids[at+1:], ids[at:])
	ids[at] = id
	return ids
}
