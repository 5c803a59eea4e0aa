package magento

// GraphQL documents. Operation names double as metric labels and are what
// tests match on, so keep them stable.

const cartFields = `
    id
    total_quantity
    prices {
      grand_total { value currency }
    }
    items {
      uid
      quantity
      product {
        sku
        name
        url_key
        small_image { url }
      }
      prices {
        row_total { value currency }
        row_total_including_tax { value currency }
      }
    }`

const createEmptyCartMutation = `
mutation CreateEmptyCart {
  createEmptyCart
}
`

const addSimpleProductsToCartMutation = `
mutation AddSimpleProductsToCart($cartId: String!, $sku: String!, $quantity: Float!) {
  addSimpleProductsToCart(
    input: {
      cart_id: $cartId,
      cart_items: [{ data: { sku: $sku, quantity: $quantity } }]
    }
  ) {
    cart {` + cartFields + `
    }
  }
}
`

const updateCartItemsMutation = `
mutation UpdateCartItems($cartId: String!, $cartItemUid: ID!, $quantity: Float!) {
  updateCartItems(
    input: {
      cart_id: $cartId,
      cart_items: [{ cart_item_uid: $cartItemUid, quantity: $quantity }]
    }
  ) {
    cart {` + cartFields + `
    }
  }
}
`

const removeItemFromCartMutation = `
mutation RemoveItemFromCart($cartId: String!, $cartItemUid: ID!) {
  removeItemFromCart(input: { cart_id: $cartId, cart_item_uid: $cartItemUid }) {
    cart {` + cartFields + `
    }
  }
}
`

const getCartQuery = `
query GetCart($cartId: String!) {
  cart(cart_id: $cartId) {` + cartFields + `
  }
}
`

const getCartCheckoutReadinessQuery = `
query GetCartCheckoutReadiness($cartId: String!) {
  cart(cart_id: $cartId) {
    id
    email
    is_virtual
    available_payment_methods {
      code
      title
    }
    shipping_addresses {
      selected_shipping_method {
        carrier_code
        method_code
      }
      available_shipping_methods {
        carrier_code
        method_code
        carrier_title
        method_title
        amount { value currency }
      }
    }
  }
}
`

const setGuestEmailOnCartMutation = `
mutation SetGuestEmailOnCart($cartId: String!, $email: String!) {
  setGuestEmailOnCart(input: { cart_id: $cartId, email: $email }) {
    cart {
      id
      email
    }
  }
}
`

const setShippingAddressesOnCartMutation = `
mutation SetShippingAddressesOnCart(
  $cartId: String!,
  $firstname: String!,
  $lastname: String!,
  $street: [String]!,
  $city: String!,
  $postcode: String,
  $countryCode: String!,
  $telephone: String!,
  $region: String
) {
  setShippingAddressesOnCart(
    input: {
      cart_id: $cartId,
      shipping_addresses: [{
        address: {
          firstname: $firstname,
          lastname: $lastname,
          street: $street,
          city: $city,
          postcode: $postcode,
          country_code: $countryCode,
          telephone: $telephone,
          region: $region,
          save_in_address_book: false
        }
      }]
    }
  ) {
    cart {
      id
    }
  }
}
`

const setShippingAddressFromCustomerAddressMutation = `
mutation SetShippingAddressFromCustomerAddress($cartId: String!, $customerAddressId: Int!) {
  setShippingAddressesOnCart(
    input: {
      cart_id: $cartId,
      shipping_addresses: [{ customer_address_id: $customerAddressId }]
    }
  ) {
    cart {
      id
    }
  }
}
`

const setBillingAddressFromCustomerAddressMutation = `
mutation SetBillingAddressFromCustomerAddress($cartId: String!, $customerAddressId: Int!) {
  setBillingAddressOnCart(
    input: {
      cart_id: $cartId,
      billing_address: { customer_address_id: $customerAddressId }
    }
  ) {
    cart {
      id
    }
  }
}
`

const setShippingMethodsOnCartMutation = `
mutation SetShippingMethodsOnCart($cartId: String!, $carrierCode: String!, $methodCode: String!) {
  setShippingMethodsOnCart(
    input: {
      cart_id: $cartId,
      shipping_methods: [{ carrier_code: $carrierCode, method_code: $methodCode }]
    }
  ) {
    cart {
      id
    }
  }
}
`

const setPaymentMethodOnCartMutation = `
mutation SetPaymentMethodOnCart($cartId: String!, $paymentMethodCode: String!) {
  setPaymentMethodOnCart(
    input: {
      cart_id: $cartId,
      payment_method: { code: $paymentMethodCode }
    }
  ) {
    cart {
      id
    }
  }
}
`

const placeOrderMutation = `
mutation PlaceOrder($cartId: String!) {
  placeOrder(input: { cart_id: $cartId }) {
    orderV2 {
      number
    }
  }
}
`

const generateCustomerTokenMutation = `
mutation GenerateCustomerToken($email: String!, $password: String!) {
  generateCustomerToken(email: $email, password: $password) {
    token
  }
}
`

const getCustomerQuery = `
query GetCustomer {
  customer {
    email
    firstname
    lastname
  }
}
`

const getCustomerDashboardQuery = `
query GetCustomerDashboard {
  customer {
    email
    firstname
    lastname
    is_subscribed
    default_billing
    default_shipping
    addresses {
      id
      firstname
      lastname
      street
      city
      postcode
      country_code
      telephone
      region { region region_code }
      default_shipping
      default_billing
    }
    orders(pageSize: 5, currentPage: 1) {
      total_count
      items {
        number
        order_date
        status
        total { grand_total { value currency } }
      }
    }
    wishlists {
      id
      items_count
      updated_at
    }
  }
}
`

const getCustomerOrdersQuery = `
query GetCustomerOrders($pageSize: Int!, $currentPage: Int!) {
  customer {
    orders(pageSize: $pageSize, currentPage: $currentPage, sort: { sort_field: CREATED_AT, sort_direction: DESC }) {
      total_count
      page_info { current_page total_pages }
      items {
        number
        order_date
        status
        total { grand_total { value currency } }
      }
    }
  }
}
`

const getCountriesQuery = `
query GetCountries {
  countries {
    id
    two_letter_abbreviation
    available_regions {
      id
      code
      name
    }
  }
}
`

const listProductsQuery = `
query ListProducts($search: String!, $pageSize: Int!, $currentPage: Int!) {
  products(search: $search, pageSize: $pageSize, currentPage: $currentPage) {
    items {
      uid
      sku
      name
      url_key
      stock_status
      small_image { url }
      price_range {
        minimum_price {
          final_price { value currency }
          regular_price { value currency }
        }
      }
    }
    total_count
    page_info { current_page total_pages }
  }
}
`

const productByURLKeyQuery = `
query ProductByUrlKey($urlKey: String!) {
  products(filter: { url_key: { eq: $urlKey } }) {
    items {
      uid
      sku
      name
      url_key
      stock_status
      description { html }
      small_image { url }
      price_range {
        minimum_price {
          final_price { value currency }
          regular_price { value currency }
        }
      }
    }
  }
}
`
