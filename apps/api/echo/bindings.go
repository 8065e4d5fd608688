package echoapi

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/taskademic/core"
)

var orderingParam = "ordering"

type Ordering struct {
	Orderings []core.DBOrdering
}

func (ord *Ordering) Bind(ctx echo.Context) {
	data := ctx.QueryParams()
	if len(data) == 0 {
		return
	}
	val, ok := data[orderingParam]
	if !ok || len(val) == 0 || val[0] == "" {
		return
	}

	for _, field := range strings.Split(val[0], ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		ord.Orderings = append(ord.Orderings, core.DBOrdering{Field: field, Ascending: !descending})
	}
}

// queryInt reads an integer query param, `dflt` when missing.
func queryInt(ctx echo.Context, name string, dflt int) (int, error) {
	val := strings.TrimSpace(ctx.QueryParam(name))
	if val == "" {
		return dflt, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, core.NewFieldError(name, "must be an integer")
	}
	return n, nil
}

// queryDate reads a YYYY-MM-DD query param, the zero Date when missing.
func queryDate(ctx echo.Context, name string) (core.Date, error) {
	val := strings.TrimSpace(ctx.QueryParam(name))
	if val == "" {
		return core.Date{}, nil
	}
	d, err := core.ParseDate(val)
	if err != nil {
		return core.Date{}, core.NewFieldError(name, "must be a date of the form YYYY-MM-DD")
	}
	return d, nil
}
