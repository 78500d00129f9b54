package search

import (
	"errors"
	"fmt"

	"github.com/sms-next/internal/config"

	"github.com/meilisearch/meilisearch-go"
)

// ErrDisabled 搜索服务未启用
var ErrDisabled = errors.New("search disabled")

// Client Meilisearch 客户端封装
type Client struct {
	client meilisearch.ServiceManager
}

// NewClient 创建搜索客户端，未启用时返回空壳实例
func NewClient(cfg *config.SearchConfig) *Client {
	if cfg == nil || !cfg.Enabled || cfg.Host == "" {
		return &Client{}
	}
	ms := meilisearch.New(cfg.Host, meilisearch.WithAPIKey(cfg.APIKey))
	return &Client{client: ms}
}

// Enabled 搜索是否可用
func (c *Client) Enabled() bool {
	return c != nil && c.client != nil
}

// Search 在指定索引中搜索
func (c *Client) Search(index, query string, options *meilisearch.SearchRequest) (*meilisearch.SearchResponse, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}
	resp, err := c.client.Index(index).Search(query, options)
	if err != nil {
		return nil, fmt.Errorf("meilisearch search error: %w", err)
	}
	return resp, nil
}

// IndexDocuments 写入文档
func (c *Client) IndexDocuments(index string, documents any, primaryKey ...string) error {
	if !c.Enabled() {
		return ErrDisabled
	}
	if _, err := c.client.Index(index).AddDocuments(documents, primaryKey...); err != nil {
		return fmt.Errorf("meilisearch index document error: %w", err)
	}
	return nil
}

// DeleteDocument 删除文档
func (c *Client) DeleteDocument(index, documentID string) error {
	if !c.Enabled() {
		return ErrDisabled
	}
	if _, err := c.client.Index(index).DeleteDocument(documentID); err != nil {
		return fmt.Errorf("meilisearch delete document error: %w", err)
	}
	return nil
}

// DeleteAllDocuments 清空索引
func (c *Client) DeleteAllDocuments(index string) error {
	if !c.Enabled() {
		return ErrDisabled
	}
	if _, err := c.client.Index(index).DeleteAllDocuments(); err != nil {
		return fmt.Errorf("meilisearch clear index error: %w", err)
	}
	return nil
}
