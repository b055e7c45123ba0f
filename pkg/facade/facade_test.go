// Copyright 2016 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package facade

import (
	"context"
	"strings"
	"testing"

	"github.com/bravechou2009/impala/pkg/authorization/policyreload"
	"github.com/bravechou2009/impala/pkg/catalog/catalogpb"
	"github.com/bravechou2009/impala/pkg/catalog/store"
	"github.com/bravechou2009/impala/pkg/catalogd"
	"github.com/bravechou2009/impala/pkg/metastore"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	dbs    map[string]*metastore.Database
	tables map[string]*metastore.Table

	createDatabaseCalls int
	createTableCalls    int
	dropDatabaseCalls   int
	dropTableCalls      int
}

func (c *fakeClient) GetDatabase(_ context.Context, name string) (*metastore.Database, error) {
	if db, ok := c.dbs[name]; ok {
		return db, nil
	}
	return nil, errNotFound
}

func (c *fakeClient) GetTable(_ context.Context, dbName, tableName string) (*metastore.Table, error) {
	if tbl, ok := c.tables[dbName+"."+strings.ToLower(tableName)]; ok {
		return tbl, nil
	}
	return nil, errNotFound
}

func (c *fakeClient) CreateDatabase(context.Context, *metastore.Database) error {
	c.createDatabaseCalls++
	return nil
}

func (c *fakeClient) CreateTable(context.Context, *metastore.Table) error {
	c.createTableCalls++
	return nil
}

func (c *fakeClient) DropDatabase(context.Context, string) error {
	c.dropDatabaseCalls++
	return nil
}

func (c *fakeClient) DropTable(context.Context, string, string) error {
	c.dropTableCalls++
	return nil
}

func (c *fakeClient) AlterTable(context.Context, *metastore.Table) error { return nil }
func (c *fakeClient) Release()                                           {}

type errNotFoundType struct{}

func (errNotFoundType) Error() string { return "not found" }

var errNotFound = errNotFoundType{}

type fakePool struct {
	client *fakeClient
}

func (p *fakePool) Get(context.Context) (metastore.Client, error) { return p.client, nil }

func newTestFacade(t *testing.T, pool *fakePool) *Facade {
	t.Helper()
	catalog, err := catalogd.New(policyreload.Config{}, prometheus.NewRegistry())
	require.NoError(t, err)
	return New(catalog, pool, nil, nil)
}

func seedCatalog(t *testing.T, f *Facade) {
	t.Helper()
	sid := catalogpb.ServiceID{Hi: 1, Lo: 1}
	db := store.NewDatabaseDesc("sales", "", "", "", 0)
	tbl := &store.TableDesc{
		DbName: "sales",
		Name:   "orders",
		Columns: store.NewColumnList([]store.Column{
			{Name: "region", Type: "STRING"},
			{Name: "amount", Type: "DOUBLE"},
		}),
	}
	_, err := f.catalog.ApplyBatch(context.Background(), []catalogpb.CatalogObject{
		{Kind: catalogpb.CatalogMarker, Version: 1},
		{Kind: catalogpb.Database, Key: catalogpb.NewDbKey("sales"), Version: 1, Payload: db},
		{Kind: catalogpb.Table, Key: catalogpb.NewTableKey("sales", "orders"), Version: 1, Payload: tbl},
	}, nil, sid)
	require.NoError(t, err)
}

func TestGetDbNamesAndTableNames(t *testing.T) {
	f := newTestFacade(t, &fakePool{})
	seedCatalog(t, f)

	dbs := f.GetDbNames(GetDbsParams{Pattern: "", User: "anyone"})
	require.Equal(t, []string{"sales"}, dbs.Dbs)

	tables, err := f.GetTableNames(GetTablesParams{Db: "sales", Pattern: "", User: "anyone"})
	require.NoError(t, err)
	require.Equal(t, []string{"orders"}, tables.Tables)
}

func TestDescribeTable(t *testing.T) {
	f := newTestFacade(t, &fakePool{})
	seedCatalog(t, f)

	result, err := f.DescribeTable(DescribeTableParams{Db: "sales", Table: "orders", User: "anyone"})
	require.NoError(t, err)
	require.Len(t, result.Columns, 2)
	require.Equal(t, "region", result.Columns[0].Name)
}

func TestExecMetadataOpGetTypesIsStatic(t *testing.T) {
	f := newTestFacade(t, &fakePool{})
	resp, err := f.ExecMetadataOp(MetadataOpRequest{Kind: MetadataOpGetTypes})
	require.NoError(t, err)
	require.Contains(t, resp.Rows, []string{"STRING"})
}

func TestExecMetadataOpGetColumnsFiltersByPattern(t *testing.T) {
	f := newTestFacade(t, &fakePool{})
	seedCatalog(t, f)

	resp, err := f.ExecMetadataOp(MetadataOpRequest{
		Kind: MetadataOpGetColumns, User: "anyone",
		SchemaPattern: "", TablePattern: "", ColumnPattern: "reg*",
	})
	require.NoError(t, err)
	require.Equal(t, [][]string{{"sales", "orders", "region", "STRING"}}, resp.Rows)
}

func TestExecMetadataOpUnknownKind(t *testing.T) {
	f := newTestFacade(t, &fakePool{})
	_, err := f.ExecMetadataOp(MetadataOpRequest{Kind: MetadataOpKind(99)})
	require.Error(t, err)
}

func TestTablePathUsesTableStorageLocation(t *testing.T) {
	pool := &fakePool{client: &fakeClient{
		tables: map[string]*metastore.Table{
			"sales.orders": {Storage: &store.StorageDescriptor{Location: "/warehouse/sales.db/orders"}},
		},
	}}
	f := newTestFacade(t, pool)
	path, err := f.TablePath(context.Background(), "sales", "orders")
	require.NoError(t, err)
	require.Equal(t, "/warehouse/sales.db/orders", path)
}

func TestTablePathFallsBackToDatabaseLocation(t *testing.T) {
	pool := &fakePool{client: &fakeClient{
		tables: map[string]*metastore.Table{"sales.orders": {}},
		dbs:    map[string]*metastore.Database{"sales": {Location: "/warehouse/sales.db"}},
	}}
	f := newTestFacade(t, pool)
	path, err := f.TablePath(context.Background(), "sales", "Orders")
	require.NoError(t, err)
	require.Equal(t, "/warehouse/sales.db/orders", path)
}

func TestGetHadoopConfigText(t *testing.T) {
	f := newTestFacade(t, &fakePool{})
	cfg := HadoopConfig{Sources: []string{"core-site.xml"}, Values: map[string]string{"fs.defaultFS": "hdfs://nn"}}
	text := f.GetHadoopConfig(cfg, true)
	require.Equal(t, "Hadoop Configuration\ncore-site.xml\n\nfs.defaultFS=hdfs://nn\n", text)
}

func TestGetHadoopConfigHTMLEscapesValues(t *testing.T) {
	f := newTestFacade(t, &fakePool{})
	cfg := HadoopConfig{Values: map[string]string{"k": "<script>"}}
	html := f.GetHadoopConfig(cfg, false)
	require.Contains(t, html, "&lt;script&gt;")
	require.NotContains(t, html, "<script>")
}

func TestGetHadoopConfigValueMissingKeyIsEmpty(t *testing.T) {
	f := newTestFacade(t, &fakePool{})
	require.Equal(t, "", f.GetHadoopConfigValue(HadoopConfig{}, "missing"))
}

func TestHandleGetDbNamesRoundTrips(t *testing.T) {
	f := newTestFacade(t, &fakePool{})
	seedCatalog(t, f)

	reqBytes, err := JSONCodec{}.Encode(GetDbsParams{Pattern: "", User: "anyone"})
	require.NoError(t, err)

	respBytes, err := f.HandleGetDbNames(reqBytes)
	require.NoError(t, err)

	var result GetDbsResult
	require.NoError(t, JSONCodec{}.Decode(respBytes, &result))
	require.Equal(t, []string{"sales"}, result.Dbs)
}

func TestHandleUpdateCatalogCacheRoundTrips(t *testing.T) {
	f := newTestFacade(t, &fakePool{})

	dbPayload, err := JSONCodec{}.Encode(store.NewDatabaseDesc("sales", "", "", "", 0))
	require.NoError(t, err)

	req := CatalogUpdateRequest{
		UpdatedObjects: []CatalogUpdate{
			{Kind: catalogpb.CatalogMarker, Version: 1},
			{Kind: catalogpb.Database, Db: "sales", Version: 1, Payload: dbPayload},
		},
		CatalogServiceID: catalogpb.ServiceID{Hi: 7, Lo: 8},
	}
	reqBytes, err := JSONCodec{}.Encode(req)
	require.NoError(t, err)

	respBytes, err := f.HandleUpdateCatalogCache(context.Background(), reqBytes)
	require.NoError(t, err)

	var resp CatalogUpdateResponse
	require.NoError(t, JSONCodec{}.Decode(respBytes, &resp))
	require.Equal(t, catalogpb.ServiceID{Hi: 7, Lo: 8}, resp.CatalogServiceID)
	require.True(t, f.catalog.IsReady())
}

func TestHandleUpdateCatalogCacheRoundTripsTableColumns(t *testing.T) {
	f := newTestFacade(t, &fakePool{})

	dbPayload, err := JSONCodec{}.Encode(store.NewDatabaseDesc("sales", "", "", "", 0))
	require.NoError(t, err)

	tbl := &store.TableDesc{
		DbName: "sales",
		Name:   "orders",
		Columns: store.NewColumnList([]store.Column{
			{Name: "region", Type: "STRING"},
			{Name: "amount", Type: "DOUBLE"},
		}),
		NumClusteringCols: 1,
	}
	tblPayload, err := JSONCodec{}.Encode(tbl)
	require.NoError(t, err)

	req := CatalogUpdateRequest{
		UpdatedObjects: []CatalogUpdate{
			{Kind: catalogpb.CatalogMarker, Version: 1},
			{Kind: catalogpb.Database, Db: "sales", Version: 1, Payload: dbPayload},
			{Kind: catalogpb.Table, Db: "sales", Name: "orders", Version: 1, Payload: tblPayload},
		},
		CatalogServiceID: catalogpb.ServiceID{Hi: 7, Lo: 8},
	}
	reqBytes, err := JSONCodec{}.Encode(req)
	require.NoError(t, err)

	_, err = f.HandleUpdateCatalogCache(context.Background(), reqBytes)
	require.NoError(t, err)

	result, err := f.DescribeTable(DescribeTableParams{Db: "sales", Table: "orders", User: "anyone"})
	require.NoError(t, err)
	require.Equal(t, []ColumnDesc{
		{Name: "region", Type: "STRING"},
		{Name: "amount", Type: "DOUBLE"},
	}, result.Columns)
}
