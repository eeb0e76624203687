package service

const (
	MessageOutOfStock           = "Quantidade solicitada fora de estoque"
	MessageAddProductFailed     = "Erro na adição do produto"
	MessageRemoveProductFailed  = "Erro na remoção do produto"
	MessageUpdateAmountFailed   = "Erro na alteração de quantidade do produto"
	MessageAddProductSuccess    = "Produto adicionado ao carrinho"
	MessageRemoveProductSuccess = "Produto removido do carrinho"
	MessageUpdateAmountSuccess  = "Quantidade do produto alterada"
)
