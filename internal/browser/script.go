package browser

import (
	"encoding/json"
	"fmt"
)

// snapshotFn maps an element to a Node. Visibility mirrors jQuery's :visible.
const snapshotFn = `function(e) {
  return {
    text: (e.textContent || "").trim(),
    visible: !!(e.offsetWidth || e.offsetHeight || e.getClientRects().length),
    class: e.getAttribute("class") || ""
  };
}`

// queryAllScript returns an expression evaluating to the snapshots of every
// element matching selector.
func queryAllScript(selector string) (string, error) {
	quoted, err := json.Marshal(selector)
	if err != nil {
		return "", fmt.Errorf("failed to quote selector: %w", err)
	}
	return fmt.Sprintf("Array.from(document.querySelectorAll(%s)).map(%s)", quoted, snapshotFn), nil
}

// decodeNodes converts a generic evaluation result into nodes.
func decodeNodes(result interface{}) ([]Node, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query result: %w", err)
	}
	nodes := []Node{}
	if string(data) == "null" {
		return nodes, nil
	}
	if err := json.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("failed to decode query result: %w", err)
	}
	return nodes, nil
}
