package cipher

// Entry maps one identifier character to its on-disk code.
type Entry struct {
	Char byte
	Code byte
}

// defaultEntries is the substitution table in insertion order. Several
// characters appear in both blocks; which one wins is decided by the
// DuplicatePolicy passed to Build.
var defaultEntries = []Entry{
	{'[', 0x3c}, {']', 0x35}, {'_', 0x40}, {'o', 0x60}, {'[', 0xbd}, {']', 0xbc},
	{'d', 0x4a}, {'a', 0x41}, {'c', 0x48}, {'b', 0x43}, {'0', 0x3e}, {'I', 0x95},
	{'1', 0x3d}, {'2', 0x3f}, {'3', 0x44}, {'4', 0xaa}, {'9', 0xa5}, {'8', 0xa6},
	{'7', 0xa4}, {'6', 0xab}, {'5', 0xa9}, {'T', 0xba}, {'R', 0xb3}, {'U', 0xb9},
	{'E', 0x99}, {'C', 0x98}, {'X', 0xb6}, {'A', 0x91}, {'B', 0x93}, {'S', 0xb8},
	{'P', 0xb2}, {'M', 0x9d}, {'Y', 0xb5}, {'N', 0x9f}, {'L', 0x9e}, {'D', 0x9a},
	{'Q', 0xb1}, {'J', 0x97}, {'K', 0x9c}, {'G', 0x94}, {'H', 0x96}, {'z', 0x67},
	{'y', 0x65}, {'x', 0x66}, {'w', 0x64}, {'v', 0x6b}, {'u', 0x69}, {'t', 0x6a},
	{'s', 0x68}, {'r', 0x63}, {'q', 0x61}, {'p', 0x62}, {'n', 0x4f}, {'m', 0x4d},
	{'l', 0x4e}, {'k', 0x4c}, {'j', 0x47}, {'i', 0x45}, {'h', 0x46}, {'g', 0x44},
	{'f', 0x4b}, {'e', 0x49}, {'.', 0x8f}, {'/', 0xa0}, {'Z', 0xb7}, {'W', 0xb4},
	{'V', 0xbb}, {'F', 0x9b},

	// Second block.
	{'D', 0x13}, {'A', 0x10}, {'_', 0x3d}, {'X', 0x3b}, {'F', 0x1a}, {'E', 0x18},
	{'H', 0x1b}, {'T', 0x33}, {'I', 0x14}, {'W', 0x39}, {'R', 0x32}, {'B', 0x12},
	{'U', 0x38}, {'N', 0x1e}, {'a', 0x80}, {'1', 0x20}, {'b', 0x8d}, {'l', 0x87},
	{'0', 0x0f}, {'m', 0x8c}, {'2', 0x22}, {'3', 0x21}, {'4', 0x23}, {'5', 0x28},
	{'6', 0x29}, {'O', 0x1d}, {'P', 0x1f}, {'S', 0x31}, {'M', 0x1c}, {'Y', 0x34},
	{'C', 0x11}, {'L', 0x17}, {'G', 0x19}, {'b', 0x82}, {'V', 0x3a}, {'J', 0x16},
	{'Z', 0x36}, {'d', 0x83}, {'K', 0x15}, {'Q', 0x30}, {'c', 0x81}, {'e', 0x88},
	{'g', 0x89}, {'i', 0x84}, {'k', 0x85}, {'v', 0xaa}, {'n', 0x8e}, {'6', 0x2a},
	{'~', 0xae}, {'f', 0x8a}, {'$', 0x03},
}

// DefaultEntries returns a copy of the built-in entry list in insertion order.
func DefaultEntries() []Entry {
	out := make([]Entry, len(defaultEntries))
	copy(out, defaultEntries)
	return out
}
