package viz

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
)

// compiledTemplate is parsed at init time to fail fast on template errors.
var compiledTemplate *template.Template

func init() {
	compiledTemplate = template.Must(template.New("viz").Parse(htmlTemplate))
}

// DefaultScriptURL is where Cytoscape.js is loaded from.
const DefaultScriptURL = "https://unpkg.com/cytoscape@3/dist/cytoscape.min.js"

// HTMLOptions configures HTML generation.
type HTMLOptions struct {
	Title           string // Page title
	CategoryToggles bool   // Show the public/user checkboxes (viewer is known)
	ScriptURL       string // Cytoscape.js location, DefaultScriptURL if empty
}

// DefaultOptions returns default HTML generation options.
func DefaultOptions() HTMLOptions {
	return HTMLOptions{
		Title:           "Heuristics space",
		CategoryToggles: true,
		ScriptURL:       DefaultScriptURL,
	}
}

// GenerateHTML generates a self-contained HTML page for the session.
// A nil session renders the empty state.
func GenerateHTML(s *Session, opts HTMLOptions) (string, error) {
	if opts.Title == "" {
		opts.Title = DefaultOptions().Title
	}
	if err := validateScriptURL(opts.ScriptURL); err != nil {
		return "", err
	}

	if s == nil || s.Len() == 0 {
		return generateEmptyHTML(opts.Title), nil
	}

	payload, err := s.ToCytoscapeJSON()
	if err != nil {
		return "", err
	}

	scriptURL := opts.ScriptURL
	if scriptURL == "" {
		scriptURL = DefaultScriptURL
	}

	data := templateData{
		Title:           opts.Title,
		ScriptURL:       scriptURL,
		Payload:         template.JS(payload),
		CategoryToggles: opts.CategoryToggles,
	}

	var buf bytes.Buffer
	if err := compiledTemplate.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// validateScriptURL accepts empty, absolute http(s) and relative URLs.
func validateScriptURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid script URL %q: %w", raw, err)
	}
	switch u.Scheme {
	case "", "http", "https":
		return nil
	default:
		return fmt.Errorf("invalid script URL %q: scheme must be http or https", raw)
	}
}

// templateData holds data for the HTML template.
type templateData struct {
	Title           string
	ScriptURL       string
	Payload         template.JS
	CategoryToggles bool
}

// generateEmptyHTML returns HTML for an empty clustering result.
func generateEmptyHTML(title string) string {
	return `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>` + template.HTMLEscapeString(title) + ` - Empty</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      display: flex;
      justify-content: center;
      align-items: center;
      height: 100vh;
      margin: 0;
      background: #f5f5f5;
    }
    .empty-state {
      text-align: center;
      color: #666;
    }
    .empty-state h2 {
      margin-bottom: 0.5em;
      color: #333;
    }
    .empty-state code {
      background: #e0e0e0;
      padding: 2px 6px;
      border-radius: 3px;
    }
  </style>
</head>
<body>
  <div class="empty-state">
    <h2>No heuristics to display</h2>
    <p>The clustering result has no nodes visible to you.</p>
    <p>Check the catalog with <code>hspace heuristic list</code></p>
  </div>
</body>
</html>`
}

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <script src="{{.ScriptURL}}"></script>
  <style>
    * {
      box-sizing: border-box;
    }
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      margin: 0;
      padding: 0;
      background: #f5f5f5;
    }
    #controls {
      padding: 8px 12px;
      font-size: 13px;
      background: #fafafa;
      border-bottom: 1px solid #ddd;
    }
    #controls label {
      margin-right: 12px;
    }
    #cy {
      width: 100%;
      height: calc(100vh - 40px);
      background: linear-gradient(#fff, #eee);
    }
    #tooltip {
      position: absolute;
      display: none;
      border: 1px solid #fdd;
      padding: 2px;
      background-color: #fee;
      opacity: 0.80;
      font-size: 13px;
      pointer-events: none;
    }
  </style>
</head>
<body>
  <div id="controls">
    <label><input type="checkbox" id="display_names"> Names</label>
    <label><input type="checkbox" id="display_closest"> Closest only</label>
    {{- if .CategoryToggles}}
    <label><input type="checkbox" id="display_public" checked> Public</label>
    <label><input type="checkbox" id="display_user_public" checked> Mine (public)</label>
    <label><input type="checkbox" id="display_user_private" checked> Mine (private)</label>
    {{- end}}
    <span id="current_zoom"></span>
  </div>
  <div id="cy"></div>
  <div id="tooltip"></div>
  <script>
    (function() {
      const payload = {{.Payload}};
      const bounds = payload.bounds;

      const cy = cytoscape({
        container: document.getElementById('cy'),
        elements: payload.elements,
        layout: { name: 'preset' },
        style: [
          {
            selector: 'node',
            style: {
              'background-color': 'data(fillColor)',
              'border-color': 'data(color)',
              'border-width': 3,
              'width': 'data(size)',
              'height': 'data(size)',
              'font-size': '10px',
              'color': '#666',
              'text-halign': 'right',
              'text-valign': 'center',
              'text-margin-x': 4
            }
          },
          {
            selector: 'node.named',
            style: { 'label': 'data(name)' }
          },
          {
            selector: 'node.hidden',
            style: { 'display': 'none' }
          }
        ]
      });

      function checked(id) {
        const el = document.getElementById(id);
        return el ? el.checked : true;
      }

      function viewKey() {
        return [
          checked('display_public'),
          checked('display_user_public'),
          checked('display_user_private'),
          document.getElementById('display_closest').checked
        ].map(function(v) { return v ? '1' : '0'; }).join('');
      }

      function applyView() {
        const visible = new Set(payload.views[viewKey()] || []);
        cy.nodes().forEach(function(n) {
          if (visible.has(n.id())) {
            n.removeClass('hidden');
          } else {
            n.addClass('hidden');
          }
        });
      }

      function updateLabels() {
        const show = document.getElementById('display_names').checked;
        cy.nodes().forEach(function(n) {
          if (show) {
            n.addClass('named');
          } else {
            n.removeClass('named');
          }
        });
      }

      // Keep the viewport center inside the pan range.
      function clampPan() {
        const ext = cy.extent();
        const cx = (ext.x1 + ext.x2) / 2;
        const cyy = (ext.y1 + ext.y2) / 2;
        const minY = -bounds.y.max, maxY = -bounds.y.min;
        let dx = 0, dy = 0;
        if (cx < bounds.x.min) dx = cx - bounds.x.min;
        if (cx > bounds.x.max) dx = cx - bounds.x.max;
        if (cyy < minY) dy = cyy - minY;
        if (cyy > maxY) dy = cyy - maxY;
        if (dx !== 0 || dy !== 0) {
          const z = cy.zoom();
          cy.panBy({ x: dx * z, y: dy * z });
        }
      }

      const tooltip = document.getElementById('tooltip');

      function escapeHtml(str) {
        if (!str) return '';
        return str.replace(/&/g, '&amp;')
                  .replace(/</g, '&lt;')
                  .replace(/>/g, '&gt;')
                  .replace(/"/g, '&quot;');
      }

      cy.on('mouseover', 'node', function(evt) {
        const data = evt.target.data();
        const pos = evt.renderedPosition || evt.position;
        tooltip.innerHTML = escapeHtml(data.name) + (data.public ? ' (public)' : ' (private)');
        tooltip.style.left = (pos.x + 5) + 'px';
        tooltip.style.top = (pos.y + 45) + 'px';
        tooltip.style.display = 'block';
      });

      cy.on('mouseout', 'node', function() {
        tooltip.style.display = 'none';
      });

      cy.on('pan', clampPan);
      cy.on('zoom', function() {
        document.getElementById('current_zoom').textContent = 'Zoom: ' + cy.zoom().toFixed(2) + 'x';
      });

      ['display_closest', 'display_public', 'display_user_public', 'display_user_private'].forEach(function(id) {
        const el = document.getElementById(id);
        if (el) el.addEventListener('change', applyView);
      });
      document.getElementById('display_names').addEventListener('change', updateLabels);

      applyView();
      updateLabels();
      cy.fit();
    })();
  </script>
</body>
</html>`
