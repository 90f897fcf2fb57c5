package renderer

import (
	"encoding/json"
	"fmt"

	"qbench/internal/model"
)

// scriptColumn is the column shape embedded into the client script
type scriptColumn struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Thresholds []model.Threshold `json:"thresholds,omitempty"`
}

// scriptChart is the chart configuration embedded into the client script
type scriptChart struct {
	Type          string                    `json:"type"`
	XField        string                    `json:"xField"`
	YField        string                    `json:"yField"`
	XMin          float64                   `json:"xMin"`
	XMax          float64                   `json:"xMax"`
	YMin          float64                   `json:"yMin"`
	YMax          float64                   `json:"yMax"`
	Width         float64                   `json:"width"`
	Height        float64                   `json:"height"`
	CategoryField string                    `json:"categoryField"`
	Categories    map[string]model.Category `json:"categories"`
}

// BuildClientScript emits the self-contained script that loads the shared
// datastore and renders stat cards, the table body and chart markers for
// this leaderboard. Cell classes follow the same threshold overwrite rule
// as ThresholdClass; marker placement follows the same interpolation as
// TickPosition.
func BuildClientScript(cfg *model.LeaderboardConfig) (string, error) {
	columns := make([]scriptColumn, 0, len(cfg.Columns))
	for _, col := range cfg.Columns {
		sc := scriptColumn{ID: col.ID, Type: col.Type}
		if col.Formatting != nil {
			sc.Thresholds = col.Formatting.Thresholds
		}
		columns = append(columns, sc)
	}

	columnsJSON, err := json.Marshal(columns)
	if err != nil {
		return "", fmt.Errorf("failed to marshal column config: %w", err)
	}

	v := cfg.Visualization
	chartJSON, err := json.Marshal(scriptChart{
		Type:          v.Type,
		XField:        v.XAxis.Field,
		YField:        v.YAxis.Field,
		XMin:          v.XAxis.Min,
		XMax:          v.XAxis.Max,
		YMin:          v.YAxis.Min,
		YMax:          v.YAxis.Max,
		Width:         PlotWidth,
		Height:        PlotHeight,
		CategoryField: v.DataPoints.CategoryField,
		Categories:    v.DataPoints.Categories,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal chart config: %w", err)
	}

	return fmt.Sprintf(clientScript, cfg.ID, columnsJSON, chartJSON), nil
}

const clientScript = `(function () {
  var LEADERBOARD_ID = %q;
  var COLUMNS = %s;
  var CHART = %s;
  var DATA_URL = '../../data/leaderboard-data.json';

  fetch(DATA_URL)
    .then(function (response) {
      if (!response.ok) {
        throw new Error('HTTP ' + response.status);
      }
      return response.json();
    })
    .then(function (data) {
      var entry = data[LEADERBOARD_ID];
      if (!entry) {
        console.error('No datastore entry for ' + LEADERBOARD_ID);
        return;
      }
      renderStats(entry.stats);
      renderTable(entry.entries);
      renderChart(entry.entries);
    })
    .catch(function (err) {
      console.error('Failed to load leaderboard data', err);
    });

  function renderStats(stats) {
    var container = document.getElementById('stats');
    if (!container || !stats) {
      return;
    }
    var html = '';
    Object.keys(stats).forEach(function (key) {
      html += '<div class="stat-card"><div class="stat-value">' + stats[key] +
        '</div><div class="stat-label">' + key + '</div></div>';
    });
    container.innerHTML = html;
  }

  function cellClass(column, value) {
    var cls = '';
    if (!column.thresholds) {
      return cls;
    }
    var num = parseFloat(value);
    if (isNaN(num)) {
      return cls;
    }
    column.thresholds.forEach(function (t) {
      if (num >= t.value) {
        cls = t.class;
      }
    });
    return cls;
  }

  function formatValue(column, value) {
    if (value === undefined || value === null) {
      return '';
    }
    if (column.type === 'percentage') {
      return value + '%%';
    }
    return value;
  }

  function renderTable(entries) {
    var body = document.getElementById('leaderboard-body');
    if (!body || !entries) {
      return;
    }
    var html = '';
    entries.forEach(function (row) {
      html += '<tr>';
      COLUMNS.forEach(function (column) {
        var value = row[column.id];
        var cls = cellClass(column, value);
        if (column.id === 'rank') {
          var rank = parseInt(value, 10);
          if (rank >= 1 && rank <= 3) {
            cls = (cls ? cls + ' ' : '') + 'rank-badge rank-' + rank;
          }
        }
        html += '<td class="' + cls + '">' + formatValue(column, value) + '</td>';
      });
      html += '</tr>';
    });
    body.innerHTML = html;
  }

  function position(value, min, max, size) {
    if (max === min) {
      return 0;
    }
    return (value - min) / (max - min) * size;
  }

  function renderChart(entries) {
    var area = document.getElementById('chart-area');
    if (!area || !entries) {
      return;
    }
    entries.forEach(function (row) {
      var x = position(row[CHART.xField], CHART.xMin, CHART.xMax, CHART.width);
      var y = CHART.height - position(row[CHART.yField], CHART.yMin, CHART.yMax, CHART.height);
      var category = CHART.categories[row[CHART.categoryField]] || {};
      var marker = document.createElement('div');
      marker.className = 'chart-marker marker-' + (category.shape || 'circle');
      marker.style.left = x + 'px';
      if (CHART.type === 'bar') {
        marker.className += ' chart-bar';
        marker.style.top = y + 'px';
        marker.style.height = (CHART.height - y) + 'px';
      } else {
        marker.style.top = y + 'px';
      }
      if (category.color) {
        marker.style.backgroundColor = category.color;
      }
      marker.title = row[CHART.categoryField] + ': ' +
        row[CHART.xField] + ', ' + row[CHART.yField];
      area.appendChild(marker);
    });
  }
})();`
