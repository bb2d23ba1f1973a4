package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// RateCardPage is the full rate card management document.
func RateCardPage(data RateCardPageData, header HeaderData) templ.Component {
	return Layout("Rate Card", header, RateCardContent(data))
}

// RateCardContent renders the catalog table. When the card is protected and
// not yet unlocked, only the unlock form and the read-only table are shown.
func RateCardContent(data RateCardPageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div id="rate-card">
<div class="flex justify-between items-center mb-4">
<h1 class="text-2xl font-bold">Rate Card</h1>
<div class="flex gap-2">
<a href="/rate-card/export" class="btn btn-outline btn-sm">Export Excel</a>
</div>
</div>`); err != nil {
			return err
		}

		locked := data.Protected && !data.Unlocked
		if locked {
			if err := rateCardUnlockForm().Render(ctx, w); err != nil {
				return err
			}
		}

		if err := rateCardTable(data, locked).Render(ctx, w); err != nil {
			return err
		}

		if !locked {
			if err := rateCardAddForm(data).Render(ctx, w); err != nil {
				return err
			}
			if err := rateCardImportForm().Render(ctx, w); err != nil {
				return err
			}
			if err := rateCardProtectForm(data.Protected).Render(ctx, w); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func rateCardTable(data RateCardPageData, locked bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="card bg-base-100 shadow mb-4"><div class="card-body p-4 overflow-x-auto">
<table class="table table-sm table-zebra">
<thead><tr><th>Category</th><th>Item</th><th>UOM</th><th class="text-right">Rate</th><th>Materials</th><th>Material Prices</th><th>Add-ons</th><th>Add-on Prices</th><th></th></tr></thead>
<tbody>`); err != nil {
			return err
		}

		for _, row := range data.Rows {
			actions := ""
			if !locked {
				actions = fmt.Sprintf(
					`<button class="btn btn-ghost btn-xs text-error" hx-delete="/rate-card/%s" hx-confirm="Delete this catalog entry?" hx-target="body">✕</button>`,
					esc(row.ID))
			}
			if _, err := fmt.Fprintf(w,
				`<tr><td>%s</td><td>%s</td><td>%s</td><td class="text-right font-mono">%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
				esc(row.Category), esc(row.Item), esc(row.UOM), esc(row.Rate),
				esc(row.MaterialOptions), esc(row.MaterialPrices),
				esc(row.AddOns), esc(row.AddonPrices), actions); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</tbody></table></div></div>`)
		return err
	})
}

func rateCardAddForm(data RateCardPageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<form hx-post="/rate-card" hx-target="body" class="card bg-base-100 shadow mb-4">
<div class="card-body p-4">
<h2 class="card-title text-lg">Add Catalog Entry</h2>
<div class="flex flex-wrap gap-2">
<input type="text" name="category" placeholder="Category" list="rate-card-categories" class="input input-bordered input-sm w-32"/>
<datalist id="rate-card-categories">`); err != nil {
			return err
		}
		for _, cat := range data.Categories {
			if _, err := fmt.Fprintf(w, `<option value="%s"></option>`, esc(cat)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</datalist>
<input type="text" name="item" placeholder="Item *" required class="input input-bordered input-sm w-40"/>
<select name="uom" class="select select-bordered select-sm">`); err != nil {
			return err
		}
		for _, uom := range data.UOMOptions {
			if _, err := fmt.Fprintf(w, `<option value="%s">%s</option>`, esc(uom), esc(uom)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</select>
<input type="number" step="0.01" name="rate" placeholder="Rate" class="input input-bordered input-sm w-24"/>
<input type="text" name="material_options" placeholder="Materials (comma separated)" class="input input-bordered input-sm w-56"/>
<input type="text" name="material_prices" placeholder="Material prices (Name:Price,…)" class="input input-bordered input-sm w-56"/>
<input type="text" name="add_ons" placeholder="Add-ons or None" class="input input-bordered input-sm w-44"/>
<input type="text" name="addon_prices" placeholder="Add-on prices (Name:Price,…)" class="input input-bordered input-sm w-56"/>
<button type="submit" class="btn btn-primary btn-sm">Add</button>
</div>
</div>
</form>`)
		return err
	})
}

func rateCardImportForm() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<form hx-post="/rate-card/import" hx-target="#import-result" hx-encoding="multipart/form-data" class="card bg-base-100 shadow mb-4">
<div class="card-body p-4">
<h2 class="card-title text-lg">Import</h2>
<div class="flex gap-2 items-center">
<input type="file" name="file" accept=".xlsx,.csv" required class="file-input file-input-bordered file-input-sm"/>
<button type="submit" class="btn btn-outline btn-sm">Upload</button>
</div>
<div id="import-result"></div>
</div>
</form>`)
		return err
	})
}

func rateCardProtectForm(protected bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		heading := "Protect with password"
		currentField := ""
		if protected {
			heading = "Change password"
			currentField = `<input type="password" name="current_password" placeholder="Current password" required class="input input-bordered input-sm"/>`
		}
		_, err := fmt.Fprintf(w, `<form hx-post="/rate-card/protect" hx-target="body" class="card bg-base-100 shadow mb-4">
<div class="card-body p-4">
<h2 class="card-title text-lg">%s</h2>
<div class="flex gap-2">
%s<input type="password" name="password" placeholder="New password" required class="input input-bordered input-sm"/>
<button type="submit" class="btn btn-outline btn-sm">Save</button>
</div>
</div>
</form>`, heading, currentField)
		return err
	})
}

func rateCardUnlockForm() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<form hx-post="/rate-card/unlock" hx-target="body" class="card bg-warning/10 shadow mb-4">
<div class="card-body p-4">
<h2 class="card-title text-lg">Rate card is locked</h2>
<p class="text-sm opacity-70">Enter the password to edit entries.</p>
<div class="flex gap-2">
<input type="password" name="password" placeholder="Password" required class="input input-bordered input-sm"/>
<button type="submit" class="btn btn-primary btn-sm">Unlock</button>
</div>
</div>
</form>`)
		return err
	})
}

// ImportResultFragment is the HTMX partial returned after an upload.
func ImportResultFragment(data ImportResultData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<div class="mt-2">
<p class="text-sm">%s: %d rows, <span class="text-success">%d imported</span>, <span class="text-error">%d rejected</span></p>`,
			esc(data.FileName), data.TotalRows, data.ValidRows, data.ErrorRows); err != nil {
			return err
		}

		if len(data.Errors) > 0 {
			if _, err := io.WriteString(w, `<table class="table table-xs"><thead><tr><th>Row</th><th>Field</th><th>Problem</th></tr></thead><tbody>`); err != nil {
				return err
			}
			for _, e := range data.Errors {
				if _, err := fmt.Fprintf(w, `<tr><td>%d</td><td>%s</td><td>%s</td></tr>`,
					e.Row, esc(e.Field), esc(e.Message)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `</tbody></table>`); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</div>`)
		return err
	})
}
