package hydroserver

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"hydroshare-viewer-service/internal/core/domain"
)

const nsWaterML = "http://www.cuahsi.org/waterML/1.1/"

type waterMLTimeSeries struct {
	Variable *struct {
		NoDataValue *string `xml:"http://www.cuahsi.org/waterML/1.1/ noDataValue"`
		Unit        *struct {
			UnitAbbreviation *string `xml:"http://www.cuahsi.org/waterML/1.1/ unitAbbreviation"`
		} `xml:"http://www.cuahsi.org/waterML/1.1/ unit"`
	} `xml:"http://www.cuahsi.org/waterML/1.1/ variable"`
	Values []struct {
		Value []struct {
			DateTime string `xml:"dateTime,attr"`
			Text     string `xml:",chardata"`
		} `xml:"http://www.cuahsi.org/waterML/1.1/ value"`
	} `xml:"http://www.cuahsi.org/waterML/1.1/ values"`
}

// parseWaterML decodes the first timeSeries of a WaterML 1.1 response.
// Readings equal to the variable's noDataValue become nil.
func parseWaterML(body []byte) (*domain.TimeSeries, error) {
	ts, err := firstTimeSeries(body)
	if err != nil {
		return nil, err
	}
	if ts.Variable == nil || ts.Variable.NoDataValue == nil {
		return nil, fmt.Errorf("%w: waterml series has no noDataValue", domain.ErrUpstreamMalformed)
	}
	noData := strings.TrimSpace(*ts.Variable.NoDataValue)

	out := &domain.TimeSeries{NoDataValue: noData, Points: []domain.TimeSeriesPoint{}}
	if u := ts.Variable.Unit; u != nil && u.UnitAbbreviation != nil {
		unit := strings.TrimSpace(*u.UnitAbbreviation)
		out.UnitName = &unit
	}
	if len(ts.Values) > 0 {
		for _, v := range ts.Values[0].Value {
			out.Points = append(out.Points, domain.NewTimeSeriesPoint(v.DateTime, strings.TrimSpace(v.Text), noData))
		}
	}
	return out, nil
}

func firstTimeSeries(body []byte) (*waterMLTimeSeries, error) {
	d := xml.NewDecoder(bytes.NewReader(body))
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: waterml response has no timeSeries", domain.ErrUpstreamMalformed)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamMalformed, err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Space != nsWaterML || se.Name.Local != "timeSeries" {
			continue
		}
		var ts waterMLTimeSeries
		if err := d.DecodeElement(&ts, &se); err != nil {
			return nil, fmt.Errorf("%w: decode timeSeries: %v", domain.ErrUpstreamMalformed, err)
		}
		return &ts, nil
	}
}
