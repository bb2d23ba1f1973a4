package templates

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// ProjectListPage is the full project list document.
func ProjectListPage(data ProjectListData, header HeaderData) templ.Component {
	return Layout("Projects", header, ProjectListContent(data))
}

// ProjectListContent is the swappable body of the project list page.
func ProjectListContent(data ProjectListData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<div id="project-list">
<div class="flex justify-between items-center mb-4">
<h1 class="text-2xl font-bold">Projects <span class="badge badge-neutral">%d</span></h1>
<a href="/projects/new" class="btn btn-primary btn-sm">New Project</a>
</div>`, data.TotalCount); err != nil {
			return err
		}

		if len(data.Items) == 0 {
			if _, err := io.WriteString(w, `<div class="card bg-base-100 p-8 text-center opacity-70">No projects yet. Create one to start quoting.</div></div>`); err != nil {
				return err
			}
			return nil
		}

		if _, err := io.WriteString(w, `<div class="grid md:grid-cols-2 lg:grid-cols-3 gap-4">`); err != nil {
			return err
		}
		for _, item := range data.Items {
			if _, err := fmt.Fprintf(w, `<div class="card bg-base-100 shadow">
<div class="card-body">
<h2 class="card-title"><a href="/projects/%s" class="link link-hover">%s</a></h2>
<p class="text-sm opacity-70">%s</p>
<div class="flex gap-2 text-xs">
<span class="badge badge-ghost">%s</span>
<span class="badge badge-ghost">%d rooms</span>
<span class="badge badge-ghost">%d items</span>
</div>
<div class="flex justify-between items-center mt-2">
<span class="font-semibold">%s</span>
<span class="text-xs opacity-50">%s</span>
</div>
<div class="card-actions justify-end">
<a href="/projects/%s/edit" class="btn btn-ghost btn-xs">Edit</a>
<button class="btn btn-ghost btn-xs text-error" hx-delete="/projects/%s" hx-confirm="Delete this project and all its rooms and items?" hx-target="#project-list" hx-swap="outerHTML">Delete</button>
</div>
</div>
</div>`,
				esc(item.ID), esc(item.Name), esc(item.ClientName), esc(item.ProjectType),
				item.RoomCount, item.ItemCount, esc(item.GrandTotal), esc(item.CreatedDate),
				esc(item.ID), esc(item.ID)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div></div>`)
		return err
	})
}

// ProjectFormPage is the full create/edit project document.
func ProjectFormPage(data ProjectFormData, header HeaderData) templ.Component {
	title := "New Project"
	if data.IsEdit {
		title = "Edit Project"
	}
	return Layout(title, header, ProjectForm(data))
}

// ProjectForm renders the create/edit form. On edit it posts back to the
// project URL; on create to the collection URL.
func ProjectForm(data ProjectFormData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		action := "/projects"
		heading := "New Project"
		if data.IsEdit {
			action = "/projects/" + data.ID + "/save"
			heading = "Edit Project"
		}

		if _, err := fmt.Fprintf(w, `<div class="card bg-base-100 shadow max-w-2xl mx-auto">
<div class="card-body">
<h1 class="card-title">%s</h1>
<form method="post" action="%s" hx-post="%s" hx-target="body" class="space-y-3">
<label class="form-control">
<span class="label-text">Project name *</span>
<input type="text" name="name" value="%s" required class="input input-bordered"/>
</label>
<label class="form-control">
<span class="label-text">Client name</span>
<input type="text" name="client_name" value="%s" class="input input-bordered"/>
</label>
<label class="form-control">
<span class="label-text">Site address</span>
<input type="text" name="site_address" value="%s" class="input input-bordered"/>
</label>
<label class="form-control">
<span class="label-text">Contact info</span>
<input type="text" name="contact_info" value="%s" class="input input-bordered"/>
</label>
<label class="form-control">
<span class="label-text">Project type</span>
<select name="project_type" class="select select-bordered">`,
			esc(heading), esc(action), esc(action),
			esc(data.Name), esc(data.ClientName), esc(data.SiteAddress), esc(data.ContactInfo)); err != nil {
			return err
		}

		for _, pt := range data.ProjectTypes {
			selected := ""
			if pt == data.ProjectType {
				selected = " selected"
			}
			if _, err := fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, esc(pt), selected, esc(pt)); err != nil {
				return err
			}
		}

		gst := strconv.FormatFloat(data.GSTPercent, 'f', -1, 64)
		discount := strconv.FormatFloat(data.DiscountPercent, 'f', -1, 64)
		_, err := fmt.Fprintf(w, `</select>
</label>
<div class="grid grid-cols-2 gap-3">
<label class="form-control">
<span class="label-text">GST %%</span>
<input type="number" step="0.01" name="gst_percent" value="%s" class="input input-bordered"/>
</label>
<label class="form-control">
<span class="label-text">Discount %%</span>
<input type="number" step="0.01" name="discount_percent" value="%s" class="input input-bordered"/>
</label>
</div>
<div class="card-actions justify-end">
<a href="/projects" class="btn btn-ghost">Cancel</a>
<button type="submit" class="btn btn-primary">Save</button>
</div>
</form>
</div>
</div>`, gst, discount)
		return err
	})
}

// ProjectViewPage is the full single-project document.
func ProjectViewPage(data ProjectViewData, header HeaderData) templ.Component {
	return Layout(data.Name, header, ProjectViewContent(data))
}

// ProjectViewContent renders the rooms with their line items, the quote
// summary and the project statistics.
func ProjectViewContent(data ProjectViewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<div id="project-view">
<div class="flex justify-between items-start mb-4">
<div>
<h1 class="text-2xl font-bold">%s</h1>
<p class="text-sm opacity-70">%s · %s</p>
<p class="text-xs opacity-50">%s</p>
</div>
<div class="flex gap-2">
<a href="/projects/%s/export/excel" class="btn btn-outline btn-sm">Excel</a>
<a href="/projects/%s/export/pdf" class="btn btn-outline btn-sm">PDF</a>
<a href="/projects/%s/edit" class="btn btn-ghost btn-sm">Edit</a>
</div>
</div>`,
			esc(data.Name), esc(data.ClientName), esc(data.ProjectType), esc(data.SiteAddress),
			esc(data.ID), esc(data.ID), esc(data.ID)); err != nil {
			return err
		}

		if err := addRoomForm(data.ID, data.RoomTemplates).Render(ctx, w); err != nil {
			return err
		}

		for _, room := range data.Rooms {
			if err := roomSection(data, room).Render(ctx, w); err != nil {
				return err
			}
		}

		if err := totalsCard(data).Render(ctx, w); err != nil {
			return err
		}
		if err := statsCard(data).Render(ctx, w); err != nil {
			return err
		}

		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func addRoomForm(projectID string, roomTemplates []RoomTemplateOption) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<form hx-post="/projects/%s/rooms" hx-target="body" class="flex gap-2 mb-4">
<input type="text" name="name" placeholder="Room name" required class="input input-bordered input-sm"/>
<select name="template_id" class="select select-bordered select-sm">
<option value="">No template</option>`, esc(projectID)); err != nil {
			return err
		}
		for _, tpl := range roomTemplates {
			if _, err := fmt.Fprintf(w, `<option value="%s">%s (%d items)</option>`,
				esc(tpl.ID), esc(tpl.Name), tpl.ItemCount); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</select>
<button type="submit" class="btn btn-primary btn-sm">Add Room</button>
</form>`)
		return err
	})
}

func roomSection(data ProjectViewData, room RoomSection) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<div class="card bg-base-100 shadow mb-4">
<div class="card-body p-4">
<div class="flex justify-between items-center">
<h2 class="card-title text-lg">%s</h2>
<div class="flex gap-2 items-center">
<span class="font-semibold">%s</span>
<button class="btn btn-ghost btn-xs" hx-post="/projects/%s/rooms/%s/save-template" hx-prompt="Template name" hx-target="body">Save as template</button>
<button class="btn btn-ghost btn-xs text-error" hx-delete="/projects/%s/rooms/%s" hx-confirm="Delete this room and all its items?" hx-target="body">Delete</button>
</div>
</div>
<table class="table table-sm table-zebra">
<thead><tr><th>Item</th><th>UOM</th><th>L</th><th>H</th><th>Qty</th><th>Rate</th><th>Material</th><th>Add-ons</th><th class="text-right">Amount</th><th></th></tr></thead>
<tbody>`,
			esc(room.Name), esc(room.Total),
			esc(data.ID), esc(room.ID),
			esc(data.ID), esc(room.ID)); err != nil {
			return err
		}

		for _, item := range room.Items {
			if _, err := fmt.Fprintf(w, `<tr>
<td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td>
<td class="text-right font-mono">%s</td>
<td><button class="btn btn-ghost btn-xs text-error" hx-delete="/projects/%s/items/%s" hx-confirm="Delete this item?" hx-target="body">✕</button></td>
</tr>`,
				esc(item.ItemName), esc(item.UOM), esc(item.Length), esc(item.Height),
				esc(item.Quantity), esc(item.Rate), esc(item.Material), esc(item.AddOns),
				esc(item.Amount), esc(data.ID), esc(item.ID)); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, `</tbody></table>`); err != nil {
			return err
		}
		if err := addItemForm(data, room).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div></div>`)
		return err
	})
}

func addItemForm(data ProjectViewData, room RoomSection) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<form hx-post="/projects/%s/items" hx-target="body" class="flex flex-wrap gap-2 items-end mt-2">
<input type="hidden" name="room" value="%s"/>
<select name="rate_card_id" class="select select-bordered select-xs">
<option value="">Custom item</option>`, esc(data.ID), esc(room.Name)); err != nil {
			return err
		}
		for _, rc := range data.RateCard {
			if _, err := fmt.Fprintf(w, `<option value="%s">%s — %s (%s @ %s)</option>`,
				esc(rc.ID), esc(rc.Category), esc(rc.Item), esc(rc.UOM), esc(rc.Rate)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</select>
<input type="text" name="item_name" placeholder="Item" class="input input-bordered input-xs w-28"/>
<select name="uom" class="select select-bordered select-xs">`); err != nil {
			return err
		}
		for _, uom := range data.UOMOptions {
			if _, err := fmt.Fprintf(w, `<option value="%s">%s</option>`, esc(uom), esc(uom)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</select>
<input type="number" step="0.01" name="length" placeholder="L" class="input input-bordered input-xs w-16"/>
<input type="number" step="0.01" name="height" placeholder="H" class="input input-bordered input-xs w-16"/>
<input type="number" step="0.01" name="quantity" placeholder="Qty" value="1" class="input input-bordered input-xs w-16"/>
<input type="number" step="0.01" name="rate" placeholder="Rate" class="input input-bordered input-xs w-20"/>
<button type="submit" class="btn btn-primary btn-xs">Add Item</button>
</form>`)
		return err
	})
}

func totalsCard(data ProjectViewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t := data.Totals
		if _, err := fmt.Fprintf(w, `<div class="card bg-base-100 shadow mb-4">
<div class="card-body p-4">
<h2 class="card-title text-lg">Quote Summary</h2>
<table class="table table-sm w-auto">
<tbody>
<tr><td>Subtotal</td><td class="text-right font-mono">%s</td></tr>
<tr><td>GST (%.1f%%)</td><td class="text-right font-mono">%s</td></tr>
<tr><td>Discount (%.1f%%)</td><td class="text-right font-mono">-%s</td></tr>
<tr class="font-bold"><td>Grand Total</td><td class="text-right font-mono">%s</td></tr>
</tbody>
</table>
<p class="text-sm italic opacity-70">%s</p>
<form hx-post="/projects/%s/settings" hx-target="body" class="flex gap-2 items-end mt-2">
<label class="form-control">
<span class="label-text text-xs">GST %%</span>
<select name="gst_percent" class="select select-bordered select-xs">`,
			esc(t.Subtotal), t.GSTPercent, esc(t.TaxAmount),
			t.DiscountPercent, esc(t.DiscountAmount), esc(t.GrandTotal),
			esc(t.AmountInWords), esc(data.ID)); err != nil {
			return err
		}

		for _, gst := range data.GSTOptions {
			selected := ""
			if float64(gst) == t.GSTPercent {
				selected = " selected"
			}
			if _, err := fmt.Fprintf(w, `<option value="%d"%s>%d</option>`, gst, selected, gst); err != nil {
				return err
			}
		}

		discount := strconv.FormatFloat(t.DiscountPercent, 'f', -1, 64)
		if _, err := fmt.Fprintf(w, `</select>
</label>
<label class="form-control">
<span class="label-text text-xs">Discount %%</span>
<input type="number" step="0.01" name="discount_percent" value="%s" class="input input-bordered input-xs w-20"/>
</label>
<button type="submit" class="btn btn-outline btn-xs">Apply</button>
</form>`, discount); err != nil {
			return err
		}

		if len(data.UOMBreakdown) > 0 {
			if _, err := io.WriteString(w, `<h3 class="font-semibold mt-3">By unit of measure</h3>
<table class="table table-sm w-auto"><thead><tr><th>UOM</th><th>Items</th><th class="text-right">Amount</th></tr></thead><tbody>`); err != nil {
				return err
			}
			for _, row := range data.UOMBreakdown {
				if _, err := fmt.Fprintf(w, `<tr><td>%s</td><td>%d</td><td class="text-right font-mono">%s</td></tr>`,
					esc(row.UOM), row.Count, esc(row.Amount)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `</tbody></table>`); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</div></div>`)
		return err
	})
}

func statsCard(data ProjectViewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		s := data.Stats
		_, err := fmt.Fprintf(w, `<div class="card bg-base-100 shadow mb-4">
<div class="card-body p-4">
<h2 class="card-title text-lg">Statistics</h2>
<div class="stats stats-vertical lg:stats-horizontal shadow">
<div class="stat"><div class="stat-title">Rooms</div><div class="stat-value text-lg">%d</div></div>
<div class="stat"><div class="stat-title">Items</div><div class="stat-value text-lg">%d</div></div>
<div class="stat"><div class="stat-title">Avg / room</div><div class="stat-value text-lg">%.2f</div></div>
<div class="stat"><div class="stat-title">Avg item</div><div class="stat-value text-lg">%.2f</div></div>
<div class="stat"><div class="stat-title">Costliest item</div><div class="stat-value text-lg">%s</div><div class="stat-desc">%s · %.2f</div></div>
<div class="stat"><div class="stat-title">Costliest room</div><div class="stat-value text-lg">%s</div><div class="stat-desc">%.2f</div></div>
</div>
</div>
</div>`,
			s.TotalRooms, s.TotalItems, s.AvgRoomCost, s.AvgItemCost,
			esc(s.HighestCostItem.Name), esc(s.HighestCostItem.Room), s.HighestCostItem.Amount,
			esc(s.HighestCostRoom.Name), s.HighestCostRoom.Amount)
		return err
	})
}
