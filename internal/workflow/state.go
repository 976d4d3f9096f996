package workflow

// Step identifies the outer wizard state.
type Step int

const (
	// StepWelcome shows the intro screen, auto-advancing after a delay.
	StepWelcome Step = iota
	// StepFaceDetection waits for a face to be held in frame.
	StepFaceDetection
	// StepBackgroundSelection offers the backdrop grid.
	StepBackgroundSelection
	// StepClothingSelection is the composite clothing branch; the stage
	// within it lives in Substep and is never visible as the outer step.
	StepClothingSelection
	// StepComplete shows the finished look; a dwell click requests a save.
	StepComplete
)

func (s Step) String() string {
	switch s {
	case StepWelcome:
		return "welcome"
	case StepFaceDetection:
		return "face_detection"
	case StepBackgroundSelection:
		return "background_selection"
	case StepClothingSelection:
		return "clothing_selection"
	case StepComplete:
		return "complete"
	}
	return "unknown"
}

// Substep identifies the stage inside StepClothingSelection.
type Substep int

const (
	// SubstepNone applies whenever the wizard is outside the clothing branch.
	SubstepNone Substep = iota
	// SubstepInitial is the t-shirt vs shirt choice.
	SubstepInitial
	// SubstepTShirtPick selects a t-shirt; the final choice for that branch.
	SubstepTShirtPick
	// SubstepShirtPick selects a shirt, then moves on to accessories.
	SubstepShirtPick
	// SubstepAccessoryPick is the blazer / tie / shirt-only choice.
	SubstepAccessoryPick
	// SubstepBlazerPick selects a blazer.
	SubstepBlazerPick
	// SubstepTiePick selects a tie.
	SubstepTiePick
)

func (s Substep) String() string {
	switch s {
	case SubstepNone:
		return ""
	case SubstepInitial:
		return "initial"
	case SubstepTShirtPick:
		return "tshirt_pick"
	case SubstepShirtPick:
		return "shirt_pick"
	case SubstepAccessoryPick:
		return "accessory_pick"
	case SubstepBlazerPick:
		return "blazer_pick"
	case SubstepTiePick:
		return "tie_pick"
	}
	return "unknown"
}

// Clothing category names, matching the asset directory layout.
const (
	CategoryTShirts = "tshirts"
	CategoryShirts  = "shirts"
	CategoryBlazers = "blazers"
	CategoryTies    = "ties"
)

// NoItem marks an item index selection that has not been made.
const NoItem = -1

// State is the accumulated wizard progress. It is owned and mutated only by
// the Workflow; everyone else gets copies.
type State struct {
	Step    Step    `json:"step"`
	Substep Substep `json:"substep"`

	BackgroundID     string `json:"background_id,omitempty"`
	ClothingCategory string `json:"clothing_category,omitempty"`
	ClothingType     string `json:"clothing_type,omitempty"`
	ClothingItem     int    `json:"clothing_item"`
	AccessoryType    string `json:"accessory_type,omitempty"`
	AccessoryItem    int    `json:"accessory_item"`
}

func initialState() State {
	return State{
		Step:          StepWelcome,
		Substep:       SubstepNone,
		ClothingItem:  NoItem,
		AccessoryItem: NoItem,
	}
}
