package mcp

// ChrestLearnInput defines the input for the chrest_learn tool.
type ChrestLearnInput struct {
	Pattern  string `json:"pattern" jsonschema:"description=Pattern in angle-bracket notation; items separated by spaces with a trailing $ marking completeness (e.g. 'A B C $'),required"`
	Modality string `json:"modality,omitempty" jsonschema:"description=Pattern modality: 'visual' (default) 'verbal' or 'action'"`
	Repeat   int    `json:"repeat,omitempty" jsonschema:"description=Number of times to present the pattern (default: 1)"`
}

// ChrestLearnOutput defines the output for the chrest_learn tool.
type ChrestLearnOutput struct {
	Node    int     `json:"node" jsonschema:"description=Handle of the node the final presentation produced"`
	Size    int     `json:"size" jsonschema:"description=Node count of the modality's network after learning"`
	ClockS  float64 `json:"clock_seconds" jsonschema:"description=Total simulated time consumed so far"`
	Message string  `json:"message" jsonschema:"description=Human-readable result message"`
}

// ChrestRecogniseInput defines the input for the chrest_recognise tool.
type ChrestRecogniseInput struct {
	Pattern  string `json:"pattern" jsonschema:"description=Pattern in angle-bracket notation,required"`
	Modality string `json:"modality,omitempty" jsonschema:"description=Pattern modality: 'visual' (default) 'verbal' or 'action'"`
}

// ChrestRecogniseOutput defines the output for the chrest_recognise tool.
type ChrestRecogniseOutput struct {
	Node     int    `json:"node" jsonschema:"description=Handle of the deepest matching node"`
	Contents string `json:"contents" jsonschema:"description=Test path of the matched node"`
	Image    string `json:"image" jsonschema:"description=Learned content of the matched node"`
	IsRoot   bool   `json:"is_root" jsonschema:"description=Whether nothing beyond the modality root was recognised"`
}

// ChrestStatsInput defines the input for the chrest_stats tool.
type ChrestStatsInput struct {
	Modality string `json:"modality,omitempty" jsonschema:"description=Restrict to one modality; empty for all"`
}

// ModalityStats summarizes one modality's subnetwork.
type ModalityStats struct {
	Modality     string  `json:"modality"`
	Size         int     `json:"size"`
	AverageDepth float64 `json:"average_depth"`
}

// ChrestStatsOutput defines the output for the chrest_stats tool.
type ChrestStatsOutput struct {
	Networks []ModalityStats `json:"networks" jsonschema:"description=Per-modality size and depth statistics"`
	Total    int             `json:"total" jsonschema:"description=Total node count across the arena"`
	ClockS   float64         `json:"clock_seconds" jsonschema:"description=Total simulated time consumed so far"`
}
