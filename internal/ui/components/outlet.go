package components

import (
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/portfolio/internal/transition"
	"github.com/leapstack-labs/portfolio/internal/ui/markup"
)

// OutletID is the element that hosts the transitioning views.
const OutletID = "outlet"

// Timing feeds the animation durations to the stylesheet.
type Timing struct {
	Enter time.Duration
	Exit  time.Duration
}

func (t Timing) style() string {
	return "--enter:" + strconv.FormatInt(t.Enter.Milliseconds(), 10) + "ms;" +
		"--exit:" + strconv.FormatInt(t.Exit.Milliseconds(), 10) + "ms"
}

// ViewID is the DOM id of the section holding instance id.
func ViewID(id uint64) string {
	return "view-" + strconv.FormatUint(id, 10)
}

// Outlet renders the view host with its mounted views in order.
func Outlet(t Timing, views ...templ.Component) templ.Component {
	return markup.Component(func(w *markup.Writer) {
		w.Raw("<div")
		w.Attr("id", OutletID)
		w.Raw(` class="outlet"`)
		w.Attr("style", t.style())
		w.Raw(">")
		for _, v := range views {
			w.Render(v)
		}
		w.Raw("</div>")
	})
}

// View wraps one page body in the section the stylesheet animates by phase.
func View(in transition.Instance, body templ.Component) templ.Component {
	return markup.Component(func(w *markup.Writer) {
		w.Raw("<section")
		w.Attr("id", ViewID(in.ID))
		w.Raw(` class="view"`)
		w.Attr("data-phase", in.Phase.String())
		w.Attr("data-key", in.Key)
		if in.Phase == transition.Exiting {
			w.Raw(` aria-hidden="true"`)
		}
		w.Raw(">")
		w.Render(body)
		w.Raw("</section>")
	})
}
