package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// esc is a short alias so markup-heavy component bodies stay readable.
func esc(s string) string {
	return templ.EscapeString(s)
}

// Layout wraps page content in the full HTML document: head, header bar
// with the project switcher, toast container and the HTMX/Alpine includes.
func Layout(title string, header HeaderData, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en" data-theme="light">
<head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1"/>
<title>%s — Quote Studio</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/alpinejs@3.14.1" defer></script>
<link href="https://cdn.jsdelivr.net/npm/daisyui@4.12.10/dist/full.min.css" rel="stylesheet"/>
<script src="https://cdn.tailwindcss.com"></script>
</head>
<body class="min-h-screen bg-base-200">`, esc(title)); err != nil {
			return err
		}

		if err := headerBar(header).Render(ctx, w); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<main id="main-content" class="container mx-auto p-4">`); err != nil {
			return err
		}
		if err := content.Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</main>`); err != nil {
			return err
		}

		_, err := io.WriteString(w, toastScript+`</body></html>`)
		return err
	})
}

// headerBar renders the top navigation with the active-project switcher.
func headerBar(header HeaderData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<header class="navbar bg-base-100 shadow">
<div class="flex-1">
<a href="/projects" class="btn btn-ghost text-xl">Quote Studio</a>
<a href="/rate-card" class="btn btn-ghost btn-sm">Rate Card</a>
</div>
<div class="flex-none">`); err != nil {
			return err
		}

		label := "Select project"
		if header.ActiveProject != nil {
			label = header.ActiveProject.Name
		}
		if _, err := fmt.Fprintf(w, `<div class="dropdown dropdown-end">
<label tabindex="0" class="btn btn-outline btn-sm">%s</label>
<ul tabindex="0" class="dropdown-content menu bg-base-100 rounded-box shadow w-64 p-2 z-10">`, esc(label)); err != nil {
			return err
		}

		for _, p := range header.Projects {
			active := ""
			if p.IsActive {
				active = ` class="active"`
			}
			if _, err := fmt.Fprintf(w,
				`<li><a%s hx-post="/projects/%s/switch" hx-target="body" hx-push-url="/projects/%s">%s<span class="text-xs opacity-60">%s</span></a></li>`,
				active, esc(p.ID), esc(p.ID), esc(p.Name), esc(p.Client)); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</ul></div></div></header>
<div id="toast-container" class="toast toast-top toast-end z-50"></div>`)
		return err
	})
}

// toastScript listens for the showToast HX-Trigger event and for the flash
// cookie set on non-HTMX redirects.
const toastScript = `<script>
function showToast(message, type) {
  const container = document.getElementById('toast-container');
  const alertClass = {success:'alert-success', error:'alert-error', info:'alert-info', warning:'alert-warning'}[type] || 'alert-info';
  const el = document.createElement('div');
  el.className = 'alert ' + alertClass + ' shadow-lg';
  el.textContent = message;
  container.appendChild(el);
  setTimeout(() => el.remove(), 4000);
}
document.body.addEventListener('showToast', function (evt) {
  showToast(evt.detail.message, evt.detail.type);
});
(function () {
  const match = document.cookie.match(/(?:^|; )flash_toast=([^;]*)/);
  if (!match) return;
  try {
    const data = JSON.parse(decodeURIComponent(match[1]));
    showToast(data.message, data.type);
  } catch (e) { /* stale cookie */ }
  document.cookie = 'flash_toast=; Path=/; Max-Age=0';
})();
</script>`
