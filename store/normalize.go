package store

import (
	"strconv"
)

const typenameKey = "__typename"

// Publish normalizes a decoded JSON object into the record parent. Nested
// objects carrying a string "id" become records keyed by that id and are
// merged with any cached version; objects without one get a client id
// derived from their position. handles maps a field name to a connection
// key, making that field retrievable with Connection.
func (tx *Tx) Publish(parent DataID, data map[string]interface{}, handles map[string]string) {
	rec := tx.Create(parent, typenameOf(data))
	tx.publishFields(rec, data, handles)
}

func (tx *Tx) publishFields(rec *Record, data map[string]interface{}, handles map[string]string) {
	for key, value := range data {
		if key == typenameKey {
			continue
		}
		storageKey := key
		if h, ok := handles[key]; ok {
			storageKey = ConnectionKey(h, nil)
		}

		switch v := value.(type) {
		case map[string]interface{}:
			child := tx.Create(childID(rec.id, storageKey, v, -1), typenameOf(v))
			tx.publishFields(child, v, handles)
			rec.SetLinkedRecordID(storageKey, child.id)
		case []interface{}:
			if !isObjectList(v) && !(len(v) == 0 && hasLinkList(rec, storageKey)) {
				rec.SetValue(storageKey, v)
				continue
			}
			ids := make([]DataID, 0, len(v))
			for i, el := range v {
				obj, ok := el.(map[string]interface{})
				if !ok {
					continue
				}
				child := tx.Create(childID(rec.id, storageKey, obj, i), typenameOf(obj))
				tx.publishFields(child, obj, handles)
				ids = append(ids, child.id)
			}
			rec.SetLinkedRecordIDs(storageKey, ids)
		default:
			rec.SetValue(storageKey, v)
		}
	}
}

func childID(parent DataID, key string, obj map[string]interface{}, index int) DataID {
	if id, ok := obj["id"].(string); ok && id != "" {
		return DataID(id)
	}
	id := string(parent) + ":" + key
	if index >= 0 {
		id += ":" + strconv.Itoa(index)
	}
	return DataID(id)
}

func typenameOf(obj map[string]interface{}) string {
	s, _ := obj[typenameKey].(string)
	return s
}

func isObjectList(list []interface{}) bool {
	objects := 0
	for _, el := range list {
		switch el.(type) {
		case map[string]interface{}:
			objects++
		case nil:
		default:
			return false
		}
	}
	return objects > 0
}

func hasLinkList(rec *Record, key string) bool {
	_, ok := rec.linkLists[key]
	return ok
}
