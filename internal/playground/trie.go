package playground

type trieNode struct {
	children map[string]*trieNode
	command  CommandType
}

func newTrieNode() *trieNode {
	return &trieNode{
		children: make(map[string]*trieNode),
		command:  CommandUNKNOWN,
	}
}

func (t *trieNode) insert(command []string, cmdType CommandType) {
	current := t
	for _, part := range command {
		if _, exists := current.children[part]; !exists {
			current.children[part] = newTrieNode()
		}
		current = current.children[part]
	}
	current.command = cmdType
}

// search walks the longest known prefix of tokens and returns its command with the remaining tokens as arguments.
func (t *trieNode) search(tokens []string) (CommandType, []string) {
	current := t
	consumedTokens := 0

	for _, token := range tokens {
		next, exists := current.children[token]
		if !exists {
			break
		}
		current = next
		consumedTokens++
	}

	return current.command, tokens[consumedTokens:]
}
