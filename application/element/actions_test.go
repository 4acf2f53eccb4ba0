package element

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_automation/application/scripts"
	"storefront_automation/application/wait"
	"storefront_automation/domain/entities"
	"storefront_automation/infrastructure/config"
	"storefront_automation/infrastructure/logging"
	"storefront_automation/infrastructure/webdriver/fakedriver"
)

var timeouts = config.TimeoutConfig{
	Short:        20 * time.Millisecond,
	Long:         200 * time.Millisecond,
	Poll:         5 * time.Millisecond,
	ScrollSettle: time.Millisecond,
}

func newActions(d *fakedriver.Driver) *Actions {
	logger := logging.Discard()
	return NewActions(d, wait.NewEngine(d, timeouts, logger), timeouts, logger)
}

func option(text string, selected bool) *fakedriver.Element {
	el := fakedriver.NewCheckbox(selected)
	el.SetText(text)
	return el
}

const (
	firstName  = entities.ResolvedLocator("//input[@id='FirstName']")
	dayOfBirth = entities.ResolvedLocator("//select[@name='DateOfBirthDay']")
)

func TestClickAndType(t *testing.T) {
	d := fakedriver.New()
	field := fakedriver.NewElement("").WithAttr("value", "old")
	d.Put(firstName, field)
	a := newActions(d)

	require.NoError(t, a.Click(firstName))
	assert.Equal(t, 1, field.Clicks())

	require.NoError(t, a.Type(firstName, "Automation"))
	assert.Equal(t, "Automation", field.Value())

	require.NoError(t, a.ClickByScript(firstName))
	calls := d.Scripts()
	require.Len(t, calls, 1)
	assert.Equal(t, scripts.Click, calls[0].Script)
	assert.Same(t, field, calls[0].Args[0])
}

func TestMissingElementIsDriverError(t *testing.T) {
	a := newActions(fakedriver.New())

	err := a.Click(firstName)
	var de *entities.DriverError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, firstName, de.Locator)
	assert.ErrorIs(t, err, entities.ErrNoSuchElement)

	_, err = a.Text(firstName)
	assert.ErrorIs(t, err, entities.ErrNoSuchElement)
}

func TestReaders(t *testing.T) {
	d := fakedriver.New()
	d.Put(firstName, fakedriver.NewElement("First name:").
		WithAttr("placeholder", "Enter first name").
		WithCSS("background-color", "rgba(74, 178, 241, 1)"))
	a := newActions(d)

	text, err := a.Text(firstName)
	require.NoError(t, err)
	assert.Equal(t, "First name:", text)

	attr, err := a.Attribute(firstName, "placeholder")
	require.NoError(t, err)
	assert.Equal(t, "Enter first name", attr)

	hex, err := a.CSSColorHex(firstName, "background-color")
	require.NoError(t, err)
	assert.Equal(t, "#4ab2f1", hex)

	n, err := a.Count(firstName)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "rgba(74, 178, 241, 1)", want: "#4ab2f1"},
		{in: "rgb(0,0,0)", want: "#000000"},
		{in: "rgba(255, 255, 255, 0.5)", want: "#ffffff"},
		{in: "#ABC", want: "#aabbcc"},
		{in: "#4AB2F1", want: "#4ab2f1"},
		{in: "rgb(256, 0, 0)", wantErr: true},
		{in: "hotpink", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := HexColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultDropdown(t *testing.T) {
	d := fakedriver.New()
	options := dayOfBirth.Child("/option")
	one, two := option("1", true), option("2", false)
	d.Put(dayOfBirth, fakedriver.NewElement(""))
	d.Put(options, one, two)
	a := newActions(d)

	require.NoError(t, a.SelectByVisibleText(context.Background(), dayOfBirth, "2"))
	assert.Equal(t, 1, two.Clicks())
	assert.Contains(t, d.Lookups(), options)

	one.SetSelected(false)
	text, err := a.SelectedOptionText(dayOfBirth)
	require.NoError(t, err)
	assert.Equal(t, "2", text)

	err = a.SelectByVisibleText(context.Background(), dayOfBirth, "32")
	assert.ErrorIs(t, err, entities.ErrNoSuchElement)
}

func TestDefaultDropdownWaitsForOptions(t *testing.T) {
	d := fakedriver.New()
	d.Put(dayOfBirth, fakedriver.NewElement(""))

	err := newActions(d).SelectByVisibleText(context.Background(), dayOfBirth, "1")
	assert.ErrorIs(t, err, entities.ErrTimeout)
}

func TestCustomDropdown(t *testing.T) {
	parent := entities.ResolvedLocator("//span[@id='number-button']")
	items := entities.ResolvedLocator("//ul[@id='number-menu']//div")

	t.Run("scrolls a hidden match into view", func(t *testing.T) {
		d := fakedriver.New()
		trigger := fakedriver.NewElement("")
		first, target := fakedriver.NewElement("5"), fakedriver.NewElement("19").Hidden()
		d.Put(parent, trigger)
		d.Put(items, first, target)
		d.HandleScripts(func(script string, args []interface{}) (interface{}, error) {
			if script == scripts.ScrollIntoView {
				args[0].(*fakedriver.Element).SetDisplayed(true)
			}
			return nil, nil
		})

		require.NoError(t, newActions(d).SelectInCustomDropdown(context.Background(), parent, items, "19"))
		assert.Equal(t, 1, trigger.Clicks())
		assert.Equal(t, 0, first.Clicks())
		assert.Equal(t, 1, target.Clicks())
		require.Len(t, d.Scripts(), 1)
	})

	t.Run("first exact match wins", func(t *testing.T) {
		d := fakedriver.New()
		a, b, c := fakedriver.NewElement("1"), fakedriver.NewElement("10"), fakedriver.NewElement("10")
		d.Put(parent, fakedriver.NewElement(""))
		d.Put(items, a, b, c)

		require.NoError(t, newActions(d).SelectInCustomDropdown(context.Background(), parent, items, "10"))
		assert.Equal(t, []int{0, 1, 0}, []int{a.Clicks(), b.Clicks(), c.Clicks()})
		assert.Empty(t, d.Scripts())
	})

	t.Run("unknown item is a no-op", func(t *testing.T) {
		d := fakedriver.New()
		a := fakedriver.NewElement("1")
		d.Put(parent, fakedriver.NewElement(""))
		d.Put(items, a)

		assert.NoError(t, newActions(d).SelectInCustomDropdown(context.Background(), parent, items, "42"))
		assert.Equal(t, 0, a.Clicks())
	})
}

func TestCheckboxIsIdempotent(t *testing.T) {
	newsletter := entities.ResolvedLocator("//input[@id='Newsletter']")

	d := fakedriver.New()
	box := fakedriver.NewCheckbox(false)
	d.Put(newsletter, box)
	a := newActions(d)

	require.NoError(t, a.Check(newsletter))
	require.NoError(t, a.Check(newsletter))
	assert.Equal(t, 1, box.Clicks())
	selected, err := a.IsSelected(newsletter)
	require.NoError(t, err)
	assert.True(t, selected)

	require.NoError(t, a.Uncheck(newsletter))
	require.NoError(t, a.Uncheck(newsletter))
	assert.Equal(t, 2, box.Clicks())
	selected, err = a.IsSelected(newsletter)
	require.NoError(t, err)
	assert.False(t, selected)
}

func TestIsUndisplayed(t *testing.T) {
	errorMsg := entities.ResolvedLocator("//span[@id='Email-error']")
	tests := []struct {
		name string
		els  []*fakedriver.Element
		want bool
	}{
		{name: "no match", want: true},
		{name: "first hidden", els: []*fakedriver.Element{fakedriver.NewElement("a").Hidden(), fakedriver.NewElement("b")}, want: true},
		{name: "first displayed", els: []*fakedriver.Element{fakedriver.NewElement("a"), fakedriver.NewElement("b").Hidden()}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := fakedriver.New()
			require.NoError(t, d.SetImplicitWait(30*time.Second))
			if len(tt.els) > 0 {
				d.Put(errorMsg, tt.els...)
			}

			got, err := newActions(d).IsUndisplayed(errorMsg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, []time.Duration{30 * time.Second, timeouts.Short, 30 * time.Second}, d.ImplicitHistory())
		})
	}
}

func TestPredicates(t *testing.T) {
	loc := entities.ResolvedLocator("//button[text()='Register']")
	d := fakedriver.New()
	d.Put(loc, fakedriver.NewElement("Register").Disabled())
	a := newActions(d)

	enabled, err := a.IsEnabled(loc)
	require.NoError(t, err)
	assert.False(t, enabled)

	displayed, err := a.IsDisplayed(loc)
	require.NoError(t, err)
	assert.True(t, displayed)
}

func TestHoverKeysAndDrag(t *testing.T) {
	source := entities.ResolvedLocator("//div[@id='draggable']")
	target := entities.ResolvedLocator("//div[@id='droppable']")
	d := fakedriver.New()
	from, to := fakedriver.NewElement("drag"), fakedriver.NewElement("drop")
	d.Put(source, from)
	d.Put(target, to)
	a := newActions(d)

	require.NoError(t, a.Hover(source))
	assert.Equal(t, 1, from.Hovers())

	require.NoError(t, a.PressKey(target, entities.KeyEnter))
	assert.Equal(t, []entities.Key{entities.KeyEnter}, to.Keys())

	require.NoError(t, a.DragAndDrop(source, target))
	calls := d.Scripts()
	require.Len(t, calls, 1)
	assert.Equal(t, scripts.DragAndDrop, calls[0].Script)
	assert.Same(t, from, calls[0].Args[0])
	assert.Same(t, to, calls[0].Args[1])
}

func TestSortedness(t *testing.T) {
	prices := entities.ResolvedLocator("//div[@class='prices']/span")

	put := func(d *fakedriver.Driver, texts ...string) {
		els := make([]*fakedriver.Element, 0, len(texts))
		for _, text := range texts {
			els = append(els, fakedriver.NewElement(text))
		}
		d.Put(prices, els...)
	}

	t.Run("floats compare numerically", func(t *testing.T) {
		d := fakedriver.New()
		a := newActions(d)

		put(d, "10%", "2%", "33%")
		ok, err := a.IsFloatSorted(prices, Ascending)
		require.NoError(t, err)
		assert.False(t, ok)

		put(d, "2", "10", "33")
		ok, err = a.IsFloatSorted(prices, Ascending)
		require.NoError(t, err)
		assert.True(t, ok)

		put(d, "$1,200.00", "$25.50", "$-3")
		ok, err = a.IsFloatSorted(prices, Descending)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("strings compare lexically", func(t *testing.T) {
		d := fakedriver.New()
		a := newActions(d)

		put(d, "10", "2", "33")
		ok, err := a.IsStringSorted(prices, Ascending)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = a.IsStringSorted(prices, Descending)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unparseable number fails", func(t *testing.T) {
		d := fakedriver.New()
		put(d, "1", "free")
		_, err := newActions(d).IsFloatSorted(prices, Ascending)
		assert.Error(t, err)
	})

	t.Run("dates", func(t *testing.T) {
		d := fakedriver.New()
		a := newActions(d)

		put(d, "Jan 5, 2026", "Oct 19, 2026", "Dec 1, 2026")
		ok, err := a.IsDateSorted(prices, Ascending)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = a.IsDateSorted(prices, Descending)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("full and short month names", func(t *testing.T) {
		d := fakedriver.New()
		a := newActions(d)

		put(d, "September 1, 2026", "October 19, 2026", "Oct 20, 2026")
		ok, err := a.IsDateSorted(prices, Ascending)
		require.NoError(t, err)
		assert.True(t, ok)

		put(d, "October 19, 2026", "Oct 20, 2026", "September 1, 2026")
		ok, err = a.IsDateSorted(prices, Ascending)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unreadable dates sort first and are reported", func(t *testing.T) {
		d := fakedriver.New()
		a := newActions(d)

		put(d, "pending", "Jan 5, 2026", "Oct 19, 2026")
		ok, err := a.IsDateSorted(prices, Ascending)
		assert.True(t, ok)
		assert.ErrorIs(t, err, entities.ErrDateParse)
		var pe *entities.DateParseError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "pending", pe.Value)

		ok, _ = a.IsDateSorted(prices, Descending)
		assert.False(t, ok)
	})
}

func TestDatesSortedNilHandling(t *testing.T) {
	day := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	later := day.AddDate(0, 0, 1)

	assert.True(t, DatesSorted([]*time.Time{nil, nil, &day, &later}, Ascending))
	assert.False(t, DatesSorted([]*time.Time{&day, nil}, Ascending))
	assert.True(t, DatesSorted([]*time.Time{&later, &day, nil}, Descending))
}
