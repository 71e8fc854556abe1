package tools

const PropReturnLastTool = "return_last_tool"

// Picker reads the pixel under the pointer and reports it through the
// listener, tagged with the button that picked it.
type Picker struct {
	props Properties
}

func NewPicker() *Picker {
	p := &Picker{}
	p.props.Add(NewBool(PropReturnLastTool, "Switch back to the previous tool after picking", true))
	return p
}

func (p *Picker) Kind() Kind               { return KindPicker }
func (p *Picker) Properties() *Properties  { return &p.props }
func (p *Picker) Move(*Env, MouseState)    {}
func (p *Picker) Release(*Env, MouseState) {}
func (p *Picker) Key(*Env, Key)            {}

// ReturnsToLastTool reports whether the toolbox should reselect the
// previous tool once a pick completes.
func (p *Picker) ReturnsToLastTool() bool { return p.props.Bool(PropReturnLastTool) }

func (p *Picker) Press(env *Env, m MouseState) {
	if m.Button == ButtonNone {
		return
	}
	c, err := env.Surface.Get(m.Pos.X, m.Pos.Y)
	if err != nil {
		return
	}
	env.picked(c, m.Button)
}
