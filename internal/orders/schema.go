// Package orders implements the open service-order processing core: it
// loads the delimited dispatch export into typed records with derived
// scheduling metrics, caches the collection, and serves search, filter,
// and aggregate queries over it.
package orders

import "strings"

// Source column names. These are fixed identifiers from the dispatch
// export and must match the file header exactly (after cleanup); renaming
// any of them breaks the ingest contract.
const (
	colOrderNum          = "SO_NO"
	colApptSeq           = "APPT_SEQ_NO"
	colOrderStatus       = "SO_STS_CD"
	colWorkItemStatus    = "WRK_ITM_STATUS"
	colWorkItemID        = "WRK_ITM_ID"
	colSchedReason       = "SCHED_RSN_CD"
	colCurrentStatus     = "CURRENT_STATUS"
	colCreateDate        = "CRT_DT"
	colSchedDate         = "SCHED_DT"
	colStatusChangeDate  = "STS_CHG_DT"
	colCustomerName      = "CUST_NAME"
	colCustomerPhone     = "CUST_PHONE"
	colCustomerAddr      = "CUST_ADDR"
	colCustomerCity      = "CUST_CITY"
	colCustomerZip       = "CUST_ZIP"
	colAppliance         = "APPLIANCE"
	colManufacturer      = "MFG_BRND_NM"
	colModel             = "MDL_NO"
	colCoverageCode      = "SVC_CVG_CD"
	colJobDescription    = "JOB_DESCRIPTION"
	colDifficulty        = "DIFFICULTY"
	colProductCategory   = "PRODUCT_CATEGORY"
	colPlanningArea      = "PLANNING_AREA"
	colDistrict          = "DISTRICT"
	colAssignedTech      = "ASSIGNED_TECH"
	colRoutedTechs       = "ROUTED_TECHS"
	colActiveTechs       = "ACTIVE_TECHS"
	colPartsCost         = "PARTS_COST"
	colPartsSell         = "PARTS_SELL"
	colPartsTax          = "PARTS_TAX"
	colUnitPrice         = "UNIT_PRICE"
	colProfitability     = "PROFITABILITY"
	colPartsOrderedQty   = "PARTS_ORDERED_QTY"
	colPartsInstalledQty = "PARTS_INSTALLED_QTY"
	colRecallFlag        = "RECALL_FLAG"
)

// headerIndex maps cleaned, lowercased column names to their position in
// the source row.
type headerIndex map[string]int

// makeHeaderIndex builds a headerIndex from the file's header row.
// Called once per load, then reused for every data row.
func makeHeaderIndex(header []string) headerIndex {
	idx := make(headerIndex, len(header))
	for i, h := range header {
		idx[cleanHeader(h)] = i
	}
	return idx
}

// cleanHeader normalizes a raw header cell: strips a UTF-8 BOM, trims
// whitespace, and lowercases for case-insensitive lookup.
func cleanHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.ToLower(strings.TrimSpace(h))
}

// get returns the raw cell for col, or "" when the column is absent from
// the file or the row is short.
func (idx headerIndex) get(row []string, col string) string {
	pos, ok := idx[strings.ToLower(col)]
	if !ok || pos >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[pos])
}
